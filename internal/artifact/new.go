package artifact

import (
	"media-summarizer/internal/config"
	"media-summarizer/internal/logger"
)

type implWriter struct {
	transcriptionsDir string
	summariesDir      string
	reportsDir        string
	logger            logger.Logger
}

// New creates a Writer over the configured output directories.
func New(cfg *config.Config, log logger.Logger) Writer {
	return &implWriter{
		transcriptionsDir: cfg.Paths.Transcriptions,
		summariesDir:      cfg.Paths.Summaries,
		reportsDir:        cfg.Paths.Reports,
		logger:            log,
	}
}
