package acquire

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"media-summarizer/internal/logger"
)

// localFileProvider copies a user-supplied audio file into the working
// directory under a sanitized, collision-free name.
type localFileProvider struct {
	logger logger.Logger
}

func newLocalFileProvider(log logger.Logger) *localFileProvider {
	return &localFileProvider{logger: log}
}

func (p *localFileProvider) Name() string { return "user-uploaded" }

func (p *localFileProvider) Download(ctx context.Context, srcPath, outputDir string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open source audio: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(srcPath)
	stem := SanitizeFilename(strings.TrimSuffix(filepath.Base(srcPath), ext))
	destPath := nextFreePath(outputDir, stem, ext)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}

	p.logger.Debug(ctx, "Copied local audio %s -> %s", srcPath, destPath)
	return destPath, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-.]+`)

// SanitizeFilename replaces characters that are unsafe or awkward in
// output filenames with underscores.
func SanitizeFilename(name string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(name, "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return "audio"
	}
	return cleaned
}

// nextFreePath appends an incrementing numeric suffix until the
// candidate path does not exist yet.
func nextFreePath(dir, stem, ext string) string {
	candidate := filepath.Join(dir, stem+ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}
