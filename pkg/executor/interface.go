package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs a command to completion and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)

	// ExecuteInDir runs a command to completion in a specific working directory.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)

	// Start launches a command without waiting for it and returns a handle.
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// Process is a handle to a command launched with Start.
type Process interface {
	// Wait blocks until the command exits. A non-zero exit code is returned
	// as an error with stderr included in the message.
	Wait() error

	// Kill forcibly terminates the command. Calling Kill after the command
	// has already exited is safe.
	Kill() error
}
