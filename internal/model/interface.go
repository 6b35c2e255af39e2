package model

import (
	"context"
	"errors"
)

var (
	// ErrInvalidURL is returned when an asset's remote source cannot be parsed.
	ErrInvalidURL = errors.New("invalid model URL")

	// ErrDownloadFailed is returned on any transport error or non-200 response.
	ErrDownloadFailed = errors.New("model download failed")
)

// ProgressFunc reports download progress as bytes written so far against the
// expected total. total may be the asset's approximate size when the server
// does not announce a length.
type ProgressFunc func(written, total int64)

// Manager owns the on-disk model asset directory.
type Manager interface {
	// Download fetches an asset. A file already present on disk is success
	// with no network traffic. Failures surface both through the returned
	// error and the shared Status observable.
	Download(ctx context.Context, asset Asset, onProgress ProgressFunc) error

	// Delete removes an asset from disk. Deleting an absent asset is a no-op.
	Delete(asset Asset) error

	// IsDownloaded reports whether the asset exists on disk with content.
	IsDownloaded(asset Asset) bool

	// Path returns the asset's on-disk location whether or not it exists.
	Path(asset Asset) string
}
