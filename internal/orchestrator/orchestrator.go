package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// Transcribe runs Idle -> ExtractingAudio -> Transcribing -> {Completed |
// Failed} for a single video. Progress from the backend is forwarded
// verbatim; each backend owns its own 0..1 scale.
func (o *implOrchestrator) Transcribe(ctx context.Context, videoPath string) (transcript.Record, error) {
	if err := o.acquire(); err != nil {
		return transcript.Record{}, err
	}
	defer o.release()

	startTime := time.Now()
	sourceID := filepath.Base(videoPath)

	o.logger.Info(ctx, "Starting transcription: %s (backend %s)", videoPath, o.backend.Name())

	o.set(ExtractingAudio, 0, "Extracting audio")
	audioPath, err := o.media.Extract(ctx, videoPath)
	if err != nil {
		return transcript.Record{}, o.fail(ctx, fmt.Errorf("extract audio: %w", err))
	}
	// The intermediate audio is removed on every exit path, success or not.
	defer o.cleanupTempFile(ctx, audioPath)

	duration, err := o.media.Duration(ctx, audioPath)
	if err != nil {
		o.logger.Warn(ctx, "Could not probe audio duration: %v", err)
		duration = 0
	}

	o.set(Transcribing, 0, fmt.Sprintf("Preparing %s transcription", o.backend.Name()))
	segs, err := o.backend.Transcribe(ctx, audioPath, o.opts, func(fraction float64, status string) {
		o.set(Transcribing, fraction, status)
	})
	if err != nil {
		return transcript.Record{}, o.fail(ctx, fmt.Errorf("transcribe: %w", err))
	}

	record := transcript.NewRecord(sourceID, segs, duration, time.Since(startTime))
	o.set(Completed, 1, "Transcription complete")
	o.logger.Info(ctx, "Transcription completed: %s, %d segments in %s",
		sourceID, len(segs), time.Since(startTime).Round(time.Millisecond))

	return record, nil
}

func (o *implOrchestrator) Progress() (float64, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fraction, o.status
}

func (o *implOrchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *implOrchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return ErrBusy
	}
	o.busy = true
	return nil
}

func (o *implOrchestrator) release() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
}

func (o *implOrchestrator) set(state State, fraction float64, status string) {
	o.mu.Lock()
	o.state = state
	o.fraction = fraction
	o.status = status
	o.mu.Unlock()
}

// fail records the failed state, resets progress and passes the error back.
func (o *implOrchestrator) fail(ctx context.Context, err error) error {
	o.logger.Error(ctx, "Transcription failed: %v", err)
	o.set(Failed, 0, err.Error())
	return err
}

func (o *implOrchestrator) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		o.logger.Warn(ctx, "Failed to remove temp file %s: %v", path, err)
		return
	}
	o.logger.Debug(ctx, "Removed temp file: %s", path)
}
