package watcher

import "context"

// Watcher monitors a directory for newly added video files.
type Watcher interface {
	// Start blocks, dispatching each new video to the handler, until the
	// context is cancelled.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one detected video file. Files are handed over
// one at a time; the next file waits until the handler returns.
type EventHandler func(ctx context.Context, filePath string) error
