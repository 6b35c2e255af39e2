package model

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

func (m *implManager) Path(asset Asset) string {
	return filepath.Join(m.dir, asset.FileName)
}

func (m *implManager) IsDownloaded(asset Asset) bool {
	info, err := os.Stat(m.Path(asset))
	return err == nil && info.Size() > 0
}

// Download streams the asset to a temporary file and moves it into place
// once the payload is complete. The destination only ever holds a finished
// file; a cancelled or failed download leaves no partial asset behind.
func (m *implManager) Download(ctx context.Context, asset Asset, onProgress ProgressFunc) error {
	if m.IsDownloaded(asset) {
		m.logger.Debug(ctx, "Model %s already present, skipping download", asset.Name)
		return nil
	}

	u, err := url.Parse(asset.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		err = fmt.Errorf("%w: %q", ErrInvalidURL, asset.URL)
		m.status.fail(err)
		return err
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		err = fmt.Errorf("%w: %v", ErrDownloadFailed, err)
		m.status.fail(err)
		return err
	}

	m.status.begin(asset.Name)
	m.logger.Info(ctx, "Downloading model %s from %s", asset.Name, asset.URL)

	if err := m.fetch(ctx, asset, onProgress); err != nil {
		m.status.fail(err)
		return err
	}

	m.status.finish()
	m.logger.Info(ctx, "Model %s downloaded to %s", asset.Name, m.Path(asset))
	return nil
}

func (m *implManager) fetch(ctx context.Context, asset Asset, onProgress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: http %d", ErrDownloadFailed, resp.StatusCode)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = asset.ApproxBytes
	}

	tmpPath := filepath.Join(m.dir, fmt.Sprintf(".%s.%s.partial", asset.FileName, xid.New().String()))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer os.Remove(tmpPath)

	var written int64
	buf := make([]byte, 256*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := tmp.Write(buf[:n]); err != nil {
				tmp.Close()
				return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, total)
			}
			if total > 0 {
				m.status.update(float64(written) / float64(total))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			tmp.Close()
			return fmt.Errorf("%w: %v", ErrDownloadFailed, readErr)
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	// Move into place immediately now that the payload is complete; the
	// temporary file is not kept across calls. Any stale file at the
	// destination goes first.
	dest := m.Path(asset)
	_ = os.Remove(dest)
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	return nil
}

// Delete removes the asset. Absence is not an error.
func (m *implManager) Delete(asset Asset) error {
	err := os.Remove(m.Path(asset))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete model %s: %w", asset.Name, err)
	}
	return nil
}
