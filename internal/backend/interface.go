package backend

import (
	"context"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// ProgressFunc receives fractional progress in [0,1] and a human-readable
// status line. Within one Transcribe call values are non-decreasing. The
// callback must not block; backends invoke it best-effort.
type ProgressFunc func(fraction float64, status string)

// Options carries per-call transcription parameters.
type Options struct {
	// Language is a language code, or "auto" to let the backend detect it.
	Language string

	// APIKey authenticates against remote providers. Ignored by local backends.
	APIKey string
}

// Backend is the common contract of all transcription providers. A Backend
// instance may be reused; each Transcribe call starts from clean internal
// state.
type Backend interface {
	// Transcribe converts the audio file into ordered segments. The returned
	// sequence has non-decreasing start offsets. Configuration, transport and
	// resource failures are reported through the typed errors in this package.
	Transcribe(ctx context.Context, audioPath string, opts Options, onProgress ProgressFunc) (transcript.Sequence, error)

	// Name identifies the provider for status messages and logs.
	Name() string

	// SupportedLanguages lists language codes the provider accepts. An empty
	// slice means the provider auto-detects and takes any input.
	SupportedLanguages() []string
}
