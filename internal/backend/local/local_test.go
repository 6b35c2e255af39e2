package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
	"github.com/nguyentantai21042004/voicescribe/internal/media"
	"github.com/nguyentantai21042004/voicescribe/internal/model"
	"github.com/nguyentantai21042004/voicescribe/pkg/executor"
)

// fakeProcess is a scriptable executor.Process.
type fakeProcess struct {
	mu       sync.Mutex
	runFor   time.Duration // how long Wait blocks unless killed
	exitErr  error
	killed   chan struct{}
	killOnce sync.Once
}

func newFakeProcess(runFor time.Duration, exitErr error) *fakeProcess {
	return &fakeProcess{runFor: runFor, exitErr: exitErr, killed: make(chan struct{})}
}

func (p *fakeProcess) Wait() error {
	select {
	case <-time.After(p.runFor):
		return p.exitErr
	case <-p.killed:
		return errors.New("signal: killed")
	}
}

func (p *fakeProcess) Kill() error {
	p.killOnce.Do(func() { close(p.killed) })
	return nil
}

func (p *fakeProcess) wasKilled() bool {
	select {
	case <-p.killed:
		return true
	default:
		return false
	}
}

// fakeExecutor hands out a pre-built process and optionally writes the
// CLI's JSON output file the way the real binary would.
type fakeExecutor struct {
	proc       *fakeProcess
	args       []string
	outputJSON string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeExecutor) Start(ctx context.Context, name string, args ...string) (executor.Process, error) {
	f.args = args
	if f.outputJSON != "" {
		for i, a := range args {
			if a == "-of" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1]+".json", []byte(f.outputJSON), 0644); err != nil {
					return nil, err
				}
			}
		}
	}
	return f.proc, nil
}

// fakeMedia returns a stable wav path without running ffmpeg.
type fakeMedia struct {
	dir     string
	calls   int
	convErr error
}

func (f *fakeMedia) Extract(_ context.Context, _ string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeMedia) ConvertToWAV(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.convErr != nil {
		return "", f.convErr
	}
	path := filepath.Join(f.dir, "model-input.wav")
	return path, os.WriteFile(path, []byte("wav"), 0644)
}

func (f *fakeMedia) Duration(_ context.Context, _ string) (float64, error) {
	return 0, errors.New("not used")
}

var _ media.Extractor = (*fakeMedia)(nil)

// fakeModels reports a fixed download state.
type fakeModels struct {
	downloaded bool
	dir        string
}

func (f *fakeModels) IsDownloaded(model.Asset) bool { return f.downloaded }
func (f *fakeModels) Path(a model.Asset) string     { return filepath.Join(f.dir, a.FileName) }

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", &strings.Builder{})
}

func newTestBackend(exec *fakeExecutor, m *fakeMedia, models *fakeModels, asset model.Asset) *implBackend {
	b := New("./whisper-cli", asset, models, m, exec, testLogger()).(*implBackend)
	b.timeout = 200 * time.Millisecond
	b.tickInterval = 5 * time.Millisecond
	return b
}

func baseAsset() model.Asset {
	a, _ := model.AssetByName("base")
	return a
}

const sampleOutput = `{
  "transcription": [
    {"offsets": {"from_ms": 0, "to_ms": 2500}, "text": " Hello there."},
    {"offsets": {"from_ms": 2500, "to_ms": 5000}, "text": " Second segment."}
  ]
}`

func TestTranscribeSuccess(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{proc: newFakeProcess(10*time.Millisecond, nil), outputJSON: sampleOutput}
	b := newTestBackend(exec, &fakeMedia{dir: dir}, &fakeModels{downloaded: true, dir: dir}, baseAsset())

	segs, err := b.Transcribe(context.Background(), "audio.m4a", backend.Options{Language: "en"}, nil)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].Text != "Hello there." || segs[0].Start != 0.0 {
		t.Errorf("segment 0 = %+v", segs[0])
	}
	if segs[1].Start != 2.5 {
		t.Errorf("segment 1 start = %v, want 2.5 (ms converted to s)", segs[1].Start)
	}
	if segs[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want default 1.0", segs[0].Confidence)
	}

	// Output file is consumed.
	if _, err := os.Stat(filepath.Join(dir, "model-input.json")); !os.IsNotExist(err) {
		t.Error("JSON output file should be deleted after parsing")
	}
}

func TestTranscribeArgs(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{proc: newFakeProcess(time.Millisecond, nil), outputJSON: `{"transcription":[]}`}
	b := newTestBackend(exec, &fakeMedia{dir: dir}, &fakeModels{downloaded: true, dir: dir}, baseAsset())

	if _, err := b.Transcribe(context.Background(), "audio.m4a", backend.Options{Language: "vi"}, nil); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	joined := strings.Join(exec.args, " ")
	for _, want := range []string{"-oj", "-of", "--temperature 0", "--suppress-nst", "-l vi"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	// base is one of the small variants and gets strict thresholds.
	if !strings.Contains(joined, "--entropy-thold 2.8") || !strings.Contains(joined, "--logprob-thold -0.5") {
		t.Errorf("strict thresholds missing for base variant: %s", joined)
	}
}

func TestTranscribeNoStrictThresholdsForLargeVariant(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{proc: newFakeProcess(time.Millisecond, nil), outputJSON: `{"transcription":[]}`}
	asset, _ := model.AssetByName("medium")
	b := newTestBackend(exec, &fakeMedia{dir: dir}, &fakeModels{downloaded: true, dir: dir}, asset)

	if _, err := b.Transcribe(context.Background(), "audio.m4a", backend.Options{Language: "auto"}, nil); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	joined := strings.Join(exec.args, " ")
	if strings.Contains(joined, "--entropy-thold") {
		t.Errorf("large variants must not get strict thresholds: %s", joined)
	}
	if strings.Contains(joined, "-l ") {
		t.Errorf("auto language must not add a language flag: %s", joined)
	}
}

func TestTranscribeModelNotDownloaded(t *testing.T) {
	dir := t.TempDir()
	m := &fakeMedia{dir: dir}
	exec := &fakeExecutor{proc: newFakeProcess(time.Millisecond, nil)}
	b := newTestBackend(exec, m, &fakeModels{downloaded: false, dir: dir}, baseAsset())

	_, err := b.Transcribe(context.Background(), "audio.m4a", backend.Options{}, nil)
	if !errors.Is(err, backend.ErrModelNotDownloaded) {
		t.Errorf("error = %v, want ErrModelNotDownloaded", err)
	}
	if m.calls != 0 {
		t.Error("no audio work may start before the model check")
	}
}

func TestTranscribeTimeout(t *testing.T) {
	dir := t.TempDir()
	proc := newFakeProcess(time.Hour, nil) // never exits on its own
	exec := &fakeExecutor{proc: proc}
	b := newTestBackend(exec, &fakeMedia{dir: dir}, &fakeModels{downloaded: true, dir: dir}, baseAsset())
	b.timeout = 30 * time.Millisecond

	_, err := b.Transcribe(context.Background(), "audio.m4a", backend.Options{}, nil)
	if !errors.Is(err, backend.ErrTranscriptionTimeout) {
		t.Fatalf("error = %v, want ErrTranscriptionTimeout", err)
	}
	if !proc.wasKilled() {
		t.Error("subprocess must be forcibly terminated on timeout")
	}
}

func TestTranscribeNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{proc: newFakeProcess(time.Millisecond, errors.New("exit status 3"))}
	b := newTestBackend(exec, &fakeMedia{dir: dir}, &fakeModels{downloaded: true, dir: dir}, baseAsset())

	_, err := b.Transcribe(context.Background(), "audio.m4a", backend.Options{}, nil)
	if !errors.Is(err, backend.ErrTranscriptionFailed) {
		t.Errorf("error = %v, want ErrTranscriptionFailed", err)
	}
}

func TestTranscribeProgressTicks(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{proc: newFakeProcess(60*time.Millisecond, nil), outputJSON: `{"transcription":[{"offsets":{"from_ms":0,"to_ms":1000},"text":"hi"}]}`}
	b := newTestBackend(exec, &fakeMedia{dir: dir}, &fakeModels{downloaded: true, dir: dir}, baseAsset())

	var fractions []float64
	if _, err := b.Transcribe(context.Background(), "audio.m4a", backend.Options{}, func(f float64, _ string) {
		fractions = append(fractions, f)
	}); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if len(fractions) < 4 {
		t.Fatalf("expected several ticks, got %v", fractions)
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("progress went backwards: %v", fractions)
		}
	}
	if last := fractions[len(fractions)-1]; last != 1.0 {
		t.Errorf("final progress = %v, want 1.0", last)
	}
	for _, f := range fractions[:len(fractions)-1] {
		if f > 0.95 {
			t.Errorf("synthetic progress %v exceeds 0.95", f)
		}
	}
}
