package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.ExecuteInDir(ctx, "", name, args...)
}

// ExecuteInDir runs an external command in a specific working directory
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

// Start launches an external command and returns a handle to it
func (e *implExecutor) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	proc := &implProcess{cmd: cmd, name: name}
	cmd.Stderr = &proc.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command '%s' start failed: %w", name, err)
	}

	return proc, nil
}

type implProcess struct {
	cmd    *exec.Cmd
	name   string
	stderr bytes.Buffer
}

func (p *implProcess) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		stderrStr := strings.TrimSpace(p.stderr.String())
		if stderrStr != "" {
			return fmt.Errorf("command '%s' failed: %w\nstderr: %s", p.name, err, stderrStr)
		}
		return fmt.Errorf("command '%s' failed: %w", p.name, err)
	}
	return nil
}

func (p *implProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}
