package device

import (
	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
	"github.com/nguyentantai21042004/voicescribe/internal/media"
)

type implBackend struct {
	recognizer Recognizer
	media      media.Extractor
	logger     logger.Logger
}

// New creates the on-device backend around an in-process recognizer.
func New(rec Recognizer, m media.Extractor, log logger.Logger) backend.Backend {
	return &implBackend{
		recognizer: rec,
		media:      m,
		logger:     log,
	}
}

func (b *implBackend) Name() string { return "device" }

func (b *implBackend) SupportedLanguages() []string {
	// The recognizer auto-detects; these are the codes it accepts as hints.
	return []string{"auto", "en", "vi", "de", "fr", "es", "ja", "ko", "zh"}
}
