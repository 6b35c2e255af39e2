package orchestrator

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// ErrBusy is returned when a transcription is requested while another is
// already running on the same instance.
var ErrBusy = errors.New("a transcription is already in progress")

// State names the phase an orchestrator instance is in.
type State int

const (
	Idle State = iota
	ExtractingAudio
	Transcribing
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ExtractingAudio:
		return "extracting_audio"
	case Transcribing:
		return "transcribing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Orchestrator drives the extract -> transcribe pipeline for one video at
// a time and exposes its live progress.
type Orchestrator interface {
	// Transcribe runs the full pipeline on a video file and returns the
	// finished record. Only one call may be active per instance.
	Transcribe(ctx context.Context, videoPath string) (transcript.Record, error)

	// Progress reports the current fraction in [0,1] and status line.
	Progress() (float64, string)

	// State reports the current pipeline phase.
	State() State
}
