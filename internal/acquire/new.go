package acquire

import (
	"media-summarizer/internal/config"
	"media-summarizer/internal/logger"
	"media-summarizer/pkg/executor"
)

// New creates the acquisition Gateway with all platform providers wired.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Gateway {
	ytdlp := newYtDlpProvider(exec, log)
	share := newShareAPIProvider(cfg, exec, log)

	return &implGateway{
		providers: map[string]Provider{
			PlatformDouyin:   share,
			PlatformBilibili: ytdlp,
			PlatformYouTube:  ytdlp,
		},
		local:     newLocalFileProvider(log),
		outputDir: cfg.Paths.Downloads,
	}
}

// NewForTest builds a Gateway over explicit providers.
func NewForTest(providers map[string]Provider, local Provider, outputDir string) Gateway {
	return &implGateway{providers: providers, local: local, outputDir: outputDir}
}
