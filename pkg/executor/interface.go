package executor

import "context"

// Executor runs external commands (ffmpeg, whisper, yt-dlp).
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
