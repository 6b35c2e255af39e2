package local

import (
	"time"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
	"github.com/nguyentantai21042004/voicescribe/internal/media"
	"github.com/nguyentantai21042004/voicescribe/internal/model"
	"github.com/nguyentantai21042004/voicescribe/pkg/executor"
)

// ModelStore is the slice of the asset manager the backend needs.
type ModelStore interface {
	IsDownloaded(asset model.Asset) bool
	Path(asset model.Asset) string
}

type implBackend struct {
	binaryPath string
	asset      model.Asset
	models     ModelStore
	media      media.Extractor
	executor   executor.Executor
	logger     logger.Logger

	// timing knobs, fixed in production and shortened in tests
	timeout      time.Duration
	tickInterval time.Duration
	tickStep     float64
}

// New creates the local-model backend around the whisper CLI at binaryPath
// using the given model asset.
func New(binaryPath string, asset model.Asset, models ModelStore, m media.Extractor, exec executor.Executor, log logger.Logger) backend.Backend {
	return &implBackend{
		binaryPath: binaryPath,
		asset:      asset,
		models:     models,
		media:      m,
		executor:   exec,
		logger:     log,

		timeout:      10 * time.Minute,
		tickInterval: 500 * time.Millisecond,
		tickStep:     0.018,
	}
}

func (b *implBackend) Name() string { return "local" }

func (b *implBackend) SupportedLanguages() []string {
	return []string{"auto", "en", "vi", "de", "fr", "es", "pt", "ja", "ko", "zh", "hi", "ru"}
}
