package device

import (
	"context"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// Result is the raw output of recognizing one audio window. Word offsets are
// relative to the window, not the source.
type Result struct {
	Words []transcript.Word

	// Text is the flat transcription of the window. When the recognizer
	// yields no word-level detail but non-empty text, the caller emits one
	// segment covering the whole window instead of dropping it.
	Text string
}

// Recognizer is the in-process speech recognizer driven by the device
// backend. Implementations process one window at a time; the backend never
// calls Recognize concurrently.
type Recognizer interface {
	// Recognize transcribes 16 kHz mono float32 samples. language is a code
	// such as "en", or "auto" for detection.
	Recognize(ctx context.Context, samples []float32, language string) (Result, error)

	// Close releases the model.
	Close() error
}
