package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"media-summarizer/internal/acquire"
	"media-summarizer/internal/artifact"
	"media-summarizer/internal/batch"
	"media-summarizer/internal/config"
	"media-summarizer/internal/domain"
	"media-summarizer/internal/jobs"
	"media-summarizer/internal/logger"
	"media-summarizer/internal/pipeline"
	"media-summarizer/internal/summarize"
	"media-summarizer/internal/transcribe"
	httpapi "media-summarizer/internal/transport/http"
	"media-summarizer/pkg/executor"
)

func main() {
	var (
		configPath     = flag.String("config", "config.yaml", "path to the yaml config file")
		url            = flag.String("url", "", "video URL to summarize")
		file           = flag.String("file", "", "local audio file to summarize")
		batchDir       = flag.String("batch", "", "directory of audio files to process sequentially")
		watch          = flag.Bool("watch", false, "watch the uploads directory and process new audio files")
		serve          = flag.Bool("serve", false, "run the HTTP job API")
		prompt         = flag.String("prompt", "", "literal summarization prompt (overrides the template)")
		promptTemplate = flag.String("prompt-template", "", "named prompt template")
		provider       = flag.String("provider", "", "summarization provider override")
		model          = flag.String("model", "", "summarization model override")
		language       = flag.String("language", "", "transcription language override")
		exportDocx     = flag.Bool("docx", false, "also render the summary as a docx file")
	)
	flag.Parse()

	ctx := context.Background()

	// Optional; credentials may come from the environment directly.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, *provider, *model, *language)

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	summarizer, err := summarize.New(cfg, log)
	if err != nil {
		log.Error(ctx, "Summarizer init failed: %v", err)
		os.Exit(1)
	}

	orchestrator := pipeline.New(
		acquire.New(cfg, exec, log),
		transcribe.New(cfg, exec, log),
		summarizer,
		artifact.New(cfg, log),
		log,
	)

	jobCfg := jobConfig(cfg, *prompt, *promptTemplate, *exportDocx)

	switch {
	case *url != "":
		runOne(ctx, log, orchestrator, domain.URLInput(*url), jobCfg)
	case *file != "":
		runOne(ctx, log, orchestrator, domain.LocalFileInput(*file), jobCfg)
	case *batchDir != "":
		runBatch(ctx, log, orchestrator, artifact.New(cfg, log), *batchDir, jobCfg)
	case *watch:
		runWatch(ctx, log, cfg, orchestrator, jobCfg)
	case *serve:
		runServer(ctx, log, cfg, orchestrator)
	default:
		fmt.Fprintln(os.Stderr, "One of -url, -file, -batch, -watch or -serve is required")
		flag.Usage()
		os.Exit(2)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func applyOverrides(cfg *config.Config, provider, model, language string) {
	if provider != "" {
		cfg.Summarize.Provider = provider
	}
	if model != "" {
		cfg.Summarize.Model = model
	}
	if language != "" {
		cfg.Whisper.Language = language
	}
}

func jobConfig(cfg *config.Config, prompt, promptTemplate string, exportDocx bool) domain.JobConfig {
	name := cfg.Summarize.PromptName
	if promptTemplate != "" {
		name = promptTemplate
	}
	if prompt == "" {
		prompt = summarize.PromptByName(name)
	}

	return domain.JobConfig{
		WhisperModel: cfg.Whisper.Model,
		Language:     cfg.Whisper.Language,
		Prompt:       prompt,
		Provider:     cfg.Summarize.Provider,
		Model:        cfg.Summarize.Model,
		ExportDocx:   exportDocx || cfg.Summarize.ExportDocx,
	}
}

func runOne(ctx context.Context, log logger.Logger, orchestrator pipeline.Orchestrator, input domain.Input, cfg domain.JobConfig) {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	job := orchestrator.Run(ctx, domain.Job{ID: "cli", Input: input, Config: cfg}, func(j domain.Job) {
		log.Info(ctx, "[%3d%%] %s", j.Progress, j.Message)
	})

	if job.State != domain.JobStateSucceeded {
		log.Error(ctx, "Job failed: %s", job.Error)
		os.Exit(1)
	}
	fmt.Println(job.ResultPath)
}

func runBatch(ctx context.Context, log logger.Logger, orchestrator pipeline.Orchestrator, writer artifact.Writer, dir string, cfg domain.JobConfig) {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	runner := batch.NewRunner(orchestrator, writer, log)
	report, err := runner.Run(ctx, dir, cfg)
	if err != nil {
		log.Error(ctx, "Batch run failed: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Batch finished: %d/%d succeeded", report.SuccessCount, report.TotalFiles)
	if report.ErrorCount > 0 {
		os.Exit(1)
	}
}

func runWatch(ctx context.Context, log logger.Logger, cfg *config.Config, orchestrator pipeline.Orchestrator, jobCfg domain.JobConfig) {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	registry := jobs.New(orchestrator, log)
	w, err := batch.NewWatcher(cfg.Paths.Uploads, registry, func() domain.JobConfig { return jobCfg }, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Watcher stopped: %v", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, log logger.Logger, cfg *config.Config, orchestrator pipeline.Orchestrator) {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	registry := jobs.New(orchestrator, log)
	handler := httpapi.NewHandler(registry, cfg, log)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Info(ctx, "Job API listening on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "Server stopped: %v", err)
		os.Exit(1)
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Downloads,
		cfg.Paths.Uploads,
		cfg.Paths.Transcriptions,
		cfg.Paths.Summaries,
		cfg.Paths.Reports,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
