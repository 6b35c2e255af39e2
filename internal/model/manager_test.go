package model

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/voicescribe/internal/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", &strings.Builder{})
}

func TestAssetCatalog(t *testing.T) {
	assets := Assets()
	if len(assets) == 0 {
		t.Fatal("catalog is empty")
	}
	for _, a := range assets {
		if a.FileName == "" || !strings.Contains(a.URL, a.Name) {
			t.Errorf("asset %q incomplete: %+v", a.Name, a)
		}
	}

	if _, ok := AssetByName("base"); !ok {
		t.Error("AssetByName(base) not found")
	}
	if _, ok := AssetByName("gigantic"); ok {
		t.Error("AssetByName(gigantic) should not exist")
	}
}

func TestDownload(t *testing.T) {
	payload := strings.Repeat("model-bytes ", 1024)
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	dir := t.TempDir()
	status := NewStatus()
	m := New(dir, status, testLogger())
	asset := Asset{Name: "tiny", FileName: "ggml-tiny.bin", URL: srv.URL + "/ggml-tiny.bin"}

	var lastWritten, lastTotal int64
	err := m.Download(t.Context(), asset, func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, asset.FileName))
	if err != nil {
		t.Fatalf("asset not on disk: %v", err)
	}
	if string(data) != payload {
		t.Error("downloaded content mismatch")
	}
	if lastWritten != int64(len(payload)) || lastTotal != int64(len(payload)) {
		t.Errorf("final progress = %d/%d, want %d/%d", lastWritten, lastTotal, len(payload), len(payload))
	}

	if st, name, frac, err := status.Snapshot(); st != StateDone || name != "tiny" || frac != 1 || err != nil {
		t.Errorf("status = %v/%s/%v/%v, want done", st, name, frac, err)
	}
	if !m.IsDownloaded(asset) {
		t.Error("IsDownloaded() = false after download")
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestDownloadAlreadyPresentSkipsNetwork(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	dir := t.TempDir()
	asset := Asset{Name: "tiny", FileName: "ggml-tiny.bin", URL: srv.URL + "/ggml-tiny.bin"}
	if err := os.WriteFile(filepath.Join(dir, asset.FileName), []byte("present"), 0644); err != nil {
		t.Fatal(err)
	}

	m := New(dir, NewStatus(), testLogger())
	if err := m.Download(t.Context(), asset, nil); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0 for an already-present asset", requests)
	}
}

func TestDownloadNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	status := NewStatus()
	m := New(dir, status, testLogger())
	asset := Asset{Name: "tiny", FileName: "ggml-tiny.bin", URL: srv.URL + "/missing.bin"}

	err := m.Download(t.Context(), asset, nil)
	if !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("Download() error = %v, want ErrDownloadFailed", err)
	}

	// Observers that did not initiate the call learn about the failure too.
	if st, _, _, serr := status.Snapshot(); st != StateFailed || serr == nil {
		t.Errorf("status = %v/%v, want failed with error", st, serr)
	}

	// No partial file left at the destination.
	if m.IsDownloaded(asset) {
		t.Error("failed download must not leave an asset behind")
	}
}

func TestDownloadInvalidURL(t *testing.T) {
	m := New(t.TempDir(), NewStatus(), testLogger())
	asset := Asset{Name: "tiny", FileName: "ggml-tiny.bin", URL: "not a url"}

	err := m.Download(t.Context(), asset, nil)
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("Download() error = %v, want ErrInvalidURL", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	dir := t.TempDir()
	m := New(dir, NewStatus(), testLogger())
	asset := Asset{Name: "tiny", FileName: "ggml-tiny.bin"}

	if err := os.WriteFile(filepath.Join(dir, asset.FileName), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(asset); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if m.IsDownloaded(asset) {
		t.Error("asset still present after Delete()")
	}
	// Deleting an absent asset is a no-op.
	if err := m.Delete(asset); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
}

func TestStatusReset(t *testing.T) {
	s := NewStatus()
	s.begin("base")
	s.update(0.5)
	s.fail(errors.New("boom"))
	s.Reset()

	if st, name, frac, err := s.Snapshot(); st != StateIdle || name != "" || frac != 0 || err != nil {
		t.Errorf("Snapshot after Reset = %v/%q/%v/%v, want idle", st, name, frac, err)
	}
}
