package cloud

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
)

type implBackend struct {
	baseURL      string
	client       *http.Client
	logger       logger.Logger
	pollInterval time.Duration
	pollAttempts int
}

// New creates the cloud backend against the provider at baseURL. The job is
// polled every 3 seconds up to pollAttempts times; a job still running after
// that fails the call.
func New(baseURL string, pollAttempts int, log logger.Logger) backend.Backend {
	if pollAttempts <= 0 {
		pollAttempts = 200
	}
	return &implBackend{
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 5 * time.Minute},
		logger:       log,
		pollInterval: 3 * time.Second,
		pollAttempts: pollAttempts,
	}
}

func (b *implBackend) Name() string { return "cloud" }

func (b *implBackend) SupportedLanguages() []string {
	return []string{"auto", "en", "vi", "de", "fr", "es", "pt", "ja", "ko", "zh", "hi"}
}
