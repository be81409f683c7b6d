package summarize

import "context"

// Engine produces a structured summary of transcript text, chunking and
// re-summarizing until the result fits the configured bound.
type Engine interface {
	Summarize(ctx context.Context, text, prompt string) (string, error)
}

// Provider is one LLM backend. It receives the fully composed prompt
// (template plus transcript chunk) and returns the model's text reply.
type Provider interface {
	Name() string
	SummarizeChunk(ctx context.Context, prompt, model string) (string, error)
}
