package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"media-summarizer/internal/domain"
	"media-summarizer/internal/segment"
)

// Transcribe runs the audio through the provider. Files at or under the
// single-pass size limit go through in one call; larger files are split
// into fixed time windows, transcribed window by window, and joined with
// newlines in window order. A failure on any window aborts the whole
// transcription.
func (e *implEngine) Transcribe(ctx context.Context, audioPath string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", &domain.TranscriptionError{Err: err}
	}

	if info.Size() <= e.limitBytes {
		text, err := e.provider.Transcribe(ctx, audioPath, e.model, e.language)
		if err != nil {
			return "", &domain.TranscriptionError{Err: err}
		}
		return text, nil
	}

	e.logger.Info(ctx, "Audio is %.1f MB, transcribing in %ds windows",
		float64(info.Size())/bytesPerMB, e.chunkSec)

	text, err := e.transcribeChunked(ctx, audioPath)
	if err != nil {
		return "", &domain.TranscriptionError{Err: err}
	}
	return text, nil
}

func (e *implEngine) transcribeChunked(ctx context.Context, audioPath string) (string, error) {
	duration, err := e.probeDuration(ctx, audioPath)
	if err != nil {
		return "", err
	}

	windows := segment.SplitAudioByTime(duration, e.chunkSec)
	if len(windows) == 0 {
		return "", fmt.Errorf("audio reports zero duration: %s", audioPath)
	}

	tempDir, err := os.MkdirTemp("", "transcribe-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	texts := make([]string, 0, len(windows))
	for i, w := range windows {
		e.logger.Info(ctx, "Transcribing window %d/%d (%02d:%02d - %02d:%02d)",
			i+1, len(windows), w.Start/60, w.Start%60, w.End/60, w.End%60)

		text, err := e.transcribeWindow(ctx, audioPath, tempDir, i, w)
		if err != nil {
			return "", fmt.Errorf("window %d: %w", i+1, err)
		}
		texts = append(texts, text)
	}

	return strings.Join(texts, "\n"), nil
}

// transcribeWindow extracts one time range to a temporary file, feeds it
// to the provider, and removes the extract before returning on any path.
func (e *implEngine) transcribeWindow(ctx context.Context, audioPath, tempDir string, idx int, w segment.Window) (string, error) {
	chunkPath := filepath.Join(tempDir, fmt.Sprintf("chunk_%03d%s", idx, filepath.Ext(audioPath)))

	args := []string{
		"-ss", strconv.Itoa(w.Start),
		"-t", strconv.Itoa(w.Duration()),
		"-i", audioPath,
		"-acodec", "copy",
		"-y",
		chunkPath,
	}
	if _, err := e.executor.Execute(ctx, e.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("extract window: %w", err)
	}
	defer os.Remove(chunkPath)

	return e.provider.Transcribe(ctx, chunkPath, e.model, e.language)
}

func (e *implEngine) probeDuration(ctx context.Context, audioPath string) (int, error) {
	out, err := e.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return int(seconds), nil
}
