package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"media-summarizer/internal/config"
	"media-summarizer/pkg/executor"
)

// whisperProvider shells out to a whisper.cpp-compatible binary.
type whisperProvider struct {
	binary   string
	modelDir string
	threads  int
	executor executor.Executor
}

func newWhisperProvider(cfg *config.Config, exec executor.Executor) *whisperProvider {
	return &whisperProvider{
		binary:   cfg.Whisper.BinaryPath,
		modelDir: cfg.Whisper.ModelDir,
		threads:  cfg.Whisper.Threads,
		executor: exec,
	}
}

func (p *whisperProvider) Transcribe(ctx context.Context, audioPath, model, language string) (string, error) {
	outBase := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", p.modelPath(model),
		"-f", audioPath,
		"-otxt",
		"-of", outBase,
	}
	if lang := normalizeLanguage(language); lang != "" {
		args = append(args, "-l", lang)
	}
	if p.threads > 0 {
		args = append(args, "-t", strconv.Itoa(p.threads))
	}

	if _, err := p.executor.Execute(ctx, p.binary, args...); err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}

	textPath := outBase + ".txt"
	defer os.Remove(textPath)

	content, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("whisper completed but transcript file is missing: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// modelPath resolves a model size tag to a model file when a model
// directory is configured, otherwise passes the tag through untouched.
func (p *whisperProvider) modelPath(model string) string {
	if p.modelDir == "" {
		return model
	}
	return filepath.Join(p.modelDir, "ggml-"+model+".bin")
}

func normalizeLanguage(raw string) string {
	lang := strings.TrimSpace(raw)
	if lang == "" || strings.EqualFold(lang, "auto") {
		return ""
	}
	return lang
}
