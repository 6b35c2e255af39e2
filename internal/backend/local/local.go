package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// The two smallest variants run with stricter decode-quality thresholds.
// Larger variants are prone to hang under the strict settings.
var strictVariants = map[string]bool{
	"tiny": true,
	"base": true,
}

// whisperOutput is the JSON document the CLI writes next to the input.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			FromMs int64 `json:"from_ms"`
			ToMs   int64 `json:"to_ms"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs the model CLI over the audio. Two concurrent activities
// drive the call: the subprocess waiter and a progress-estimation ticker
// that doubles as the wall-clock timeout enforcer. Both are joined before
// returning.
func (b *implBackend) Transcribe(ctx context.Context, audioPath string, opts backend.Options, onProgress backend.ProgressFunc) (transcript.Sequence, error) {
	if b.binaryPath == "" {
		return nil, fmt.Errorf("%w: missing model binary path", backend.ErrNotConfigured)
	}
	if !b.models.IsDownloaded(b.asset) {
		return nil, fmt.Errorf("%w: %s", backend.ErrModelNotDownloaded, b.asset.Name)
	}

	reporter := backend.NewReporter(onProgress)
	reporter.Report(0.05, "Preparing audio")

	// The model runtime needs 16 kHz mono PCM; the extracted intermediate
	// is lossy AAC, so convert again here.
	wavPath, err := b.media.ConvertToWAV(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("convert for model: %w", err)
	}
	defer os.Remove(wavPath)

	outputStem := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	outputPath := outputStem + ".json"

	args := b.buildArgs(wavPath, outputStem, opts.Language)
	b.logger.Debug(ctx, "Running %s %s", b.binaryPath, strings.Join(args, " "))

	proc, err := b.executor.Start(ctx, b.binaryPath, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrTranscriptionFailed, err)
	}

	var (
		waitErr  error
		timedOut bool
		done     = make(chan struct{})
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		waitErr = proc.Wait()
		close(done)
		return nil
	})
	g.Go(func() error {
		// The model reports no fractional progress of its own; a synthetic
		// estimate creeps toward 0.95 so the caller can tell the process is
		// alive. The same loop enforces the hard wall-clock budget.
		deadline := time.NewTimer(b.timeout)
		defer deadline.Stop()
		tick := time.NewTicker(b.tickInterval)
		defer tick.Stop()

		p := 0.10
		reporter.Report(p, "Transcribing with local model")
		for {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				_ = proc.Kill()
				<-done
				return nil
			case <-deadline.C:
				timedOut = true
				_ = proc.Kill()
				<-done
				return nil
			case <-tick.C:
				if p < 0.95 {
					p += b.tickStep
					if p > 0.95 {
						p = 0.95
					}
					reporter.Report(p, "Transcribing with local model")
				}
			}
		}
	})
	_ = g.Wait()

	if timedOut {
		return nil, fmt.Errorf("%w: model ran longer than %s", backend.ErrTranscriptionTimeout, b.timeout)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrTranscriptionFailed, waitErr)
	}

	segs, err := readOutput(outputPath)
	if err != nil {
		return nil, err
	}

	reporter.Report(1.0, "Transcription complete")
	return segs, nil
}

// buildArgs assembles the CLI invocation: JSON output, deterministic
// decoding, non-speech suppression, clamped thread count and optional
// language hint.
func (b *implBackend) buildArgs(wavPath, outputStem, language string) []string {
	args := []string{
		"-m", b.models.Path(b.asset),
		"-f", wavPath,
		"-oj",
		"-of", outputStem,
		"-t", strconv.Itoa(threadCount()),
		"--temperature", "0",
		"--suppress-nst",
	}
	if strictVariants[b.asset.Name] {
		args = append(args,
			"--entropy-thold", "2.8",
			"--logprob-thold", "-0.5",
		)
	}
	if language != "" && language != "auto" {
		args = append(args, "-l", language)
	}
	return args
}

// threadCount clamps the worker threads to [4, min(cores, 10)].
func threadCount() int {
	t := runtime.NumCPU()
	if t > 10 {
		t = 10
	}
	if t < 4 {
		t = 4
	}
	return t
}

// readOutput parses and then removes the CLI's JSON result file.
func readOutput(path string) (transcript.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read output: %v", backend.ErrTranscriptionFailed, err)
	}
	defer os.Remove(path)

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: parse output: %v", backend.ErrTranscriptionFailed, err)
	}

	var segs transcript.Sequence
	for _, entry := range out.Transcription {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		// The model reports no confidence; default to full.
		segs = append(segs, transcript.NewSegment(text, float64(entry.Offsets.FromMs)/1000.0, 1.0))
	}
	return segs, nil
}
