package acquire

import (
	"context"

	"media-summarizer/internal/domain"
)

// Gateway resolves a job input (URL or local file) to a local audio file.
type Gateway interface {
	Acquire(ctx context.Context, input domain.Input) (domain.AudioAsset, error)
}

// Provider is one acquisition strategy: it turns a raw input string into
// an audio file inside outputDir and returns the path it wrote.
type Provider interface {
	Name() string
	Download(ctx context.Context, rawInput, outputDir string) (string, error)
}
