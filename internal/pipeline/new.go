package pipeline

import (
	"media-summarizer/internal/acquire"
	"media-summarizer/internal/artifact"
	"media-summarizer/internal/logger"
	"media-summarizer/internal/summarize"
	"media-summarizer/internal/transcribe"
)

type implOrchestrator struct {
	gateway     acquire.Gateway
	transcriber transcribe.Engine
	summarizer  summarize.Engine
	writer      artifact.Writer
	logger      logger.Logger
}

// New wires an Orchestrator over the four pipeline stages.
func New(gateway acquire.Gateway, transcriber transcribe.Engine, summarizer summarize.Engine, writer artifact.Writer, log logger.Logger) Orchestrator {
	return &implOrchestrator{
		gateway:     gateway,
		transcriber: transcriber,
		summarizer:  summarizer,
		writer:      writer,
		logger:      log,
	}
}
