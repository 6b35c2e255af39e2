package model

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/voicescribe/internal/logger"
)

type implManager struct {
	dir    string
	client *http.Client
	status *Status
	logger logger.Logger
}

// New creates a Manager storing assets under dir and publishing download
// state to status.
func New(dir string, status *Status, log logger.Logger) Manager {
	return &implManager{
		dir: dir,
		// Model files are multi-gigabyte; no client timeout, cancellation
		// comes from the context.
		client: &http.Client{Timeout: 0 * time.Second},
		status: status,
		logger: log,
	}
}
