package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".m4v":  true,
	".flv":  true,
}

type implWatcher struct {
	inputDir    string
	handler     EventHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	queue       chan string
	settleDelay time.Duration
	wg          sync.WaitGroup
}

// Start monitors the input directory until the context is cancelled.
// Detected videos go through a queue drained by a single worker, so
// transcriptions never overlap.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new videos", w.inputDir)

	w.wg.Add(1)
	go w.drainQueue(ctx)

	for {
		select {
		case <-ctx.Done():
			close(w.queue)
			w.logger.Info(ctx, "Waiting for the current transcription to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				close(w.queue)
				w.wg.Wait()
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)
			select {
			case w.queue <- event.Name:
			default:
				w.logger.Warn(ctx, "Queue full, dropping %s", event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				close(w.queue)
				w.wg.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) drainQueue(ctx context.Context) {
	defer w.wg.Done()
	for path := range w.queue {
		// Give the producer a moment to finish writing the file.
		select {
		case <-time.After(w.settleDelay):
		case <-ctx.Done():
			return
		}

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
