//go:build !whisper_cpp

package device

import (
	"context"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
)

// Stub recognizer so the project builds without the whisper_cpp tag and the
// C library. Recognition reports the recognizer as unavailable.
type stubRecognizer struct{}

func NewRecognizer(modelPath string) (Recognizer, error) {
	return &stubRecognizer{}, nil
}

func (*stubRecognizer) Recognize(ctx context.Context, samples []float32, language string) (Result, error) {
	return Result{}, backend.ErrRecognizerUnavailable
}

func (*stubRecognizer) Close() error { return nil }
