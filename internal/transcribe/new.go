package transcribe

import (
	"media-summarizer/internal/config"
	"media-summarizer/internal/logger"
	"media-summarizer/pkg/executor"
)

const bytesPerMB = 1024 * 1024

type implEngine struct {
	provider   Provider
	executor   executor.Executor
	logger     logger.Logger
	ffmpegPath string
	model      string
	language   string
	limitBytes int64
	chunkSec   int
}

// New creates a transcription Engine backed by a local whisper binary.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Engine {
	return &implEngine{
		provider:   newWhisperProvider(cfg, exec),
		executor:   exec,
		logger:     log,
		ffmpegPath: cfg.FFmpeg.BinaryPath,
		model:      cfg.Whisper.Model,
		language:   cfg.Whisper.Language,
		limitBytes: int64(cfg.Transcribe.SinglePassLimitMB) * bytesPerMB,
		chunkSec:   cfg.Transcribe.ChunkSeconds,
	}
}

// NewForTest builds an Engine over an explicit provider and size bounds.
func NewForTest(provider Provider, exec executor.Executor, log logger.Logger, limitBytes int64, chunkSec int) Engine {
	return &implEngine{
		provider:   provider,
		executor:   exec,
		logger:     log,
		ffmpegPath: "ffmpeg",
		model:      "small",
		limitBytes: limitBytes,
		chunkSec:   chunkSec,
	}
}
