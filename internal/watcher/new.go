package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
)

// New creates a Watcher over inputDir. Detected videos are queued and
// handled strictly one at a time, since a transcription pipeline instance
// supports a single active run.
func New(inputDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir:    inputDir,
		handler:     handler,
		logger:      log,
		watcher:     fsw,
		queue:       make(chan string, 64),
		settleDelay: 500 * time.Millisecond,
	}, nil
}
