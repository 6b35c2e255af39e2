package orchestrator

import (
	"sync"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
	"github.com/nguyentantai21042004/voicescribe/internal/media"
)

type implOrchestrator struct {
	backend backend.Backend
	media   media.Extractor
	opts    backend.Options
	logger  logger.Logger

	mu       sync.Mutex
	busy     bool
	state    State
	fraction float64
	status   string
}

// New creates an Orchestrator over the given backend. opts carries the
// per-run language and credentials handed to the backend unchanged.
func New(b backend.Backend, m media.Extractor, opts backend.Options, log logger.Logger) Orchestrator {
	return &implOrchestrator{
		backend: b,
		media:   m,
		opts:    opts,
		logger:  log,
		state:   Idle,
	}
}
