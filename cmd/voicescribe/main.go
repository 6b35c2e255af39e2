package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/backend/cloud"
	"github.com/nguyentantai21042004/voicescribe/internal/backend/device"
	"github.com/nguyentantai21042004/voicescribe/internal/backend/local"
	"github.com/nguyentantai21042004/voicescribe/internal/config"
	"github.com/nguyentantai21042004/voicescribe/internal/export"
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
	"github.com/nguyentantai21042004/voicescribe/internal/media"
	"github.com/nguyentantai21042004/voicescribe/internal/model"
	"github.com/nguyentantai21042004/voicescribe/internal/orchestrator"
	"github.com/nguyentantai21042004/voicescribe/internal/store"
	"github.com/nguyentantai21042004/voicescribe/internal/summarizer"
	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
	"github.com/nguyentantai21042004/voicescribe/internal/watcher"
	"github.com/nguyentantai21042004/voicescribe/pkg/executor"
)

const usage = `Usage: voicescribe [-config path] <command>

Commands:
  transcribe <video>        transcribe one video and export the result
  watch                     watch the input directory and transcribe new videos
  records                   list stored transcription records
  models                    list model variants and their download state
  models download <name>    download a model variant
  models delete <name>      delete a downloaded model variant
  key set <secret>          store the cloud API key
  key clear                 remove the stored cloud API key
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level)

	app, err := newApp(cfg, log)
	if err != nil {
		log.Error(ctx, "Startup failed: %v", err)
		os.Exit(1)
	}
	defer app.close()

	if err := app.run(ctx, args); err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

// app holds the wired dependency graph.
type app struct {
	cfg         *config.Config
	logger      logger.Logger
	media       media.Extractor
	models      model.Manager
	records     store.Records
	credentials store.Credentials
	backend     backend.Backend
	recognizer  device.Recognizer
}

func newApp(cfg *config.Config, log logger.Logger) (*app, error) {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Records, cfg.Paths.Temp} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	exec := executor.New()
	a := &app{
		cfg:         cfg,
		logger:      log,
		media:       media.New(exec, log, cfg.Paths.Temp),
		models:      model.New(cfg.Whisper.ModelDir, model.NewStatus(), log),
		records:     store.NewRecords(cfg.Paths.Records, log),
		credentials: store.NewCredentials(cfg.Paths.Credentials),
	}

	switch cfg.Transcription.Backend {
	case "device":
		asset, ok := model.AssetByName(cfg.Whisper.Model)
		if !ok {
			return nil, fmt.Errorf("unknown model variant %q", cfg.Whisper.Model)
		}
		rec, err := device.NewRecognizer(a.models.Path(asset))
		if err != nil {
			return nil, fmt.Errorf("load recognizer: %w", err)
		}
		a.recognizer = rec
		a.backend = device.New(rec, a.media, log)
	case "cloud":
		a.backend = cloud.New(cfg.Cloud.BaseURL, cfg.Cloud.PollAttempts, log)
	case "local":
		asset, ok := model.AssetByName(cfg.Whisper.Model)
		if !ok {
			return nil, fmt.Errorf("unknown model variant %q", cfg.Whisper.Model)
		}
		a.backend = local.New(cfg.Whisper.BinaryPath, asset, a.models, a.media, exec, log)
	}

	return a, nil
}

func (a *app) close() {
	if a.recognizer != nil {
		a.recognizer.Close()
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "transcribe":
		if len(args) != 2 {
			return fmt.Errorf("usage: voicescribe transcribe <video>")
		}
		return a.transcribeOne(ctx, args[1])
	case "watch":
		return a.watch(ctx)
	case "records":
		return a.listRecords()
	case "models":
		return a.runModels(ctx, args[1:])
	case "key":
		return a.runKey(args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// transcribeOne runs the pipeline on a single video, persists the record
// and exports text, SRT and DOCX next to the configured output directory.
func (a *app) transcribeOne(ctx context.Context, videoPath string) error {
	orch := a.newOrchestrator()

	rec, err := orch.Transcribe(ctx, videoPath)
	if err != nil {
		return err
	}

	if err := a.records.Save(rec); err != nil {
		a.logger.Warn(ctx, "Could not persist record: %v", err)
	}
	if err := a.exportRecord(ctx, rec); err != nil {
		return err
	}
	if len(a.cfg.Gemini.APIKeys) > 0 {
		sum := summarizer.New(a.cfg.Gemini.Model, a.cfg.Gemini.APIKeys, a.logger)
		mdPath := filepath.Join(a.cfg.Paths.Output, stem(rec.SourceID)+".md")
		if err := sum.SummarizeToFile(ctx, rec, mdPath); err != nil {
			a.logger.Warn(ctx, "Summarization failed: %v", err)
		}
	}
	return nil
}

// watch transcribes every new video dropped into the input directory until
// interrupted.
func (a *app) watch(ctx context.Context) error {
	w, err := watcher.New(a.cfg.Paths.Input, func(ctx context.Context, videoPath string) error {
		return a.transcribeOne(ctx, videoPath)
	}, a.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a.logger.Info(ctx, "Watching %s, press Ctrl+C to stop", a.cfg.Paths.Input)
	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func (a *app) newOrchestrator() orchestrator.Orchestrator {
	opts := backend.Options{Language: a.cfg.Transcription.Language}
	if a.cfg.Transcription.Backend == "cloud" {
		key, err := a.credentials.Get("cloud", "default")
		if err != nil {
			a.logger.Warn(context.Background(), "Could not read cloud API key: %v", err)
		}
		opts.APIKey = key
	}
	return orchestrator.New(a.backend, a.media, opts, a.logger)
}

func (a *app) exportRecord(ctx context.Context, rec transcript.Record) error {
	base := filepath.Join(a.cfg.Paths.Output, stem(rec.SourceID))

	txt, err := os.Create(base + ".txt")
	if err != nil {
		return fmt.Errorf("create text export: %w", err)
	}
	defer txt.Close()
	if err := export.WriteText(txt, rec); err != nil {
		return fmt.Errorf("write text export: %w", err)
	}

	srt, err := os.Create(base + ".srt")
	if err != nil {
		return fmt.Errorf("create SRT export: %w", err)
	}
	defer srt.Close()
	if err := export.WriteSRT(srt, rec.Segments, 0); err != nil {
		return fmt.Errorf("write SRT export: %w", err)
	}

	if err := export.WriteDOCX(rec, base+".docx"); err != nil {
		return fmt.Errorf("write DOCX export: %w", err)
	}

	a.logger.Info(ctx, "Exported %s.{txt,srt,docx}", base)
	return nil
}

func (a *app) listRecords() error {
	records, err := a.records.LoadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No records stored.")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%s  %s  %3d segments  %6.1fs  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), len(r.Segments), r.SourceDuration, r.SourceID)
	}
	return nil
}

func (a *app) runModels(ctx context.Context, args []string) error {
	if len(args) == 0 {
		for _, asset := range model.Assets() {
			state := "not downloaded"
			if a.models.IsDownloaded(asset) {
				state = "downloaded"
			}
			fmt.Printf("%-10s %8s  %s\n", asset.Name, humanBytes(asset.ApproxBytes), state)
		}
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("usage: voicescribe models [download|delete] <name>")
	}
	asset, ok := model.AssetByName(args[1])
	if !ok {
		return fmt.Errorf("unknown model variant %q", args[1])
	}

	switch args[0] {
	case "download":
		err := a.models.Download(ctx, asset, func(written, total int64) {
			fmt.Printf("\r%s: %s / %s", asset.Name, humanBytes(written), humanBytes(total))
		})
		fmt.Println()
		return err
	case "delete":
		return a.models.Delete(asset)
	default:
		return fmt.Errorf("unknown models subcommand %q", args[0])
	}
}

func (a *app) runKey(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: voicescribe key [set <secret>|clear]")
	}
	switch args[0] {
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: voicescribe key set <secret>")
		}
		return a.credentials.Set("cloud", "default", args[1])
	case "clear":
		return a.credentials.Set("cloud", "default", "")
	default:
		return fmt.Errorf("unknown key subcommand %q", args[0])
	}
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.0f MB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
