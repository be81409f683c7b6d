package batch

import (
	"media-summarizer/internal/artifact"
	"media-summarizer/internal/jobs"
	"media-summarizer/internal/logger"
	"media-summarizer/internal/pipeline"
)

type implRunner struct {
	orchestrator pipeline.Orchestrator
	writer       artifact.Writer
	logger       logger.Logger
}

// NewRunner creates a batch Runner over the pipeline orchestrator.
func NewRunner(orchestrator pipeline.Orchestrator, writer artifact.Writer, log logger.Logger) Runner {
	return &implRunner{
		orchestrator: orchestrator,
		writer:       writer,
		logger:       log,
	}
}

// NewWatcher creates a Watcher that submits a registry job for every new
// audio file appearing in inputDir.
func NewWatcher(inputDir string, registry jobs.Registry, cfg JobConfigFunc, log logger.Logger) (Watcher, error) {
	w, err := newWatcher(inputDir, registry, cfg, log)
	if err != nil {
		return nil, err
	}
	return w, nil
}
