package acquire

import (
	"context"
	"fmt"
	"path/filepath"

	"media-summarizer/internal/logger"
	"media-summarizer/pkg/executor"
)

// ytDlpProvider downloads video audio through the yt-dlp binary.
type ytDlpProvider struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

func newYtDlpProvider(exec executor.Executor, log logger.Logger) *ytDlpProvider {
	return &ytDlpProvider{
		binary:   "yt-dlp",
		executor: exec,
		logger:   log,
	}
}

func (p *ytDlpProvider) Name() string { return "yt-dlp" }

// Download extracts mp3 audio from the URL into outputDir. The target
// filename is deterministic per platform and overwritten on repeat runs.
//
// Access-gated content (members-only bilibili videos, mostly) needs a
// browser session, so the first attempt passes --cookies-from-browser.
// On failure a context-free attempt follows and its error is the one
// surfaced.
func (p *ytDlpProvider) Download(ctx context.Context, url, outputDir string) (string, error) {
	platform := Classify(url)
	outPath := filepath.Join(outputDir, platform+"_output.mp3")

	attempts := [][]string{
		p.buildArgs(url, outPath, true),
		p.buildArgs(url, outPath, false),
	}

	var lastErr error
	for i, args := range attempts {
		if i > 0 {
			p.logger.Warn(ctx, "yt-dlp with browser cookies failed, retrying without: %v", lastErr)
		}
		p.logger.Info(ctx, "Downloading audio via yt-dlp: %s", url)

		if _, err := p.executor.Execute(ctx, p.binary, args...); err != nil {
			lastErr = err
			continue
		}
		return outPath, nil
	}

	return "", fmt.Errorf("yt-dlp download failed: %w", lastErr)
}

func (p *ytDlpProvider) buildArgs(url, outPath string, withCookies bool) []string {
	args := []string{
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"--force-overwrites",
		"--no-playlist",
		"-o", outPath,
	}
	if withCookies {
		args = append(args, "--cookies-from-browser", "chrome")
	}
	return append(args, url)
}
