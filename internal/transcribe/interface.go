package transcribe

import "context"

// Engine converts an audio file into transcript text, chunking oversized
// files into time windows.
type Engine interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Provider is the underlying speech-recognition model invocation.
type Provider interface {
	Transcribe(ctx context.Context, audioPath, model, language string) (string, error)
}
