package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"media-summarizer/internal/domain"
	"media-summarizer/internal/jobs"
	"media-summarizer/internal/logger"
)

// JobConfigFunc supplies the job config for a watched file at submit
// time, so config changes apply to files dropped later.
type JobConfigFunc func() domain.JobConfig

type implWatcher struct {
	inputDir string
	registry jobs.Registry
	cfg      JobConfigFunc
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

func newWatcher(inputDir string, registry jobs.Registry, cfg JobConfigFunc, log logger.Logger) (*implWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		registry: registry,
		cfg:      cfg,
		logger:   log,
		watcher:  watcher,
	}, nil
}

// Start blocks, submitting a job for every new supported audio file until
// the context is cancelled. The registry's per-job workers bound the
// actual processing concurrency.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new audio files", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Watch mode stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !audioExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}

			// Small delay so the file is fully written before the
			// pipeline picks it up.
			time.Sleep(500 * time.Millisecond)

			job := w.registry.Submit(ctx, domain.LocalFileInput(event.Name), w.cfg())
			w.logger.Info(ctx, "New audio detected, submitted job %s for %s", job.ID, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
