package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-summarizer/internal/domain"
)

// Platform tags produced by Classify.
const (
	PlatformDouyin   = "douyin"
	PlatformBilibili = "bilibili"
	PlatformYouTube  = "youtube"
	PlatformLocal    = "local"
)

// shortFormSignatures match share-style links from short-form video apps.
// Checked before the named platforms so that vm.tiktok-style share links
// never fall through to yt-dlp.
var shortFormSignatures = []string{
	"douyin.com",
	"v.douyin.com",
	"tiktok.com",
	"vm.tiktok.com",
	"vt.tiktok.com",
}

// Classify maps a URL to a platform tag, or "" when unsupported.
// Classification is pure string matching and therefore idempotent.
func Classify(url string) string {
	lower := strings.ToLower(url)

	for _, sig := range shortFormSignatures {
		if strings.Contains(lower, sig) {
			return PlatformDouyin
		}
	}
	if strings.Contains(lower, "bilibili.com") {
		return PlatformBilibili
	}
	if strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be") {
		return PlatformYouTube
	}
	return ""
}

type implGateway struct {
	providers map[string]Provider
	local     Provider
	outputDir string
}

// Acquire classifies the input, dispatches to the matching provider, and
// verifies an audio file actually landed on disk. When the provider's
// reported path is missing it falls back to scanning the output directory
// for the most recently written audio file.
func (g *implGateway) Acquire(ctx context.Context, input domain.Input) (domain.AudioAsset, error) {
	if input.Kind == domain.InputLocalFile {
		return g.runProvider(ctx, g.local, input.Path)
	}

	platform := Classify(input.URL)
	if platform == "" {
		return domain.AudioAsset{}, &domain.UnsupportedPlatformError{URL: input.URL}
	}

	provider, ok := g.providers[platform]
	if !ok {
		return domain.AudioAsset{}, &domain.UnsupportedPlatformError{URL: input.URL}
	}
	return g.runProvider(ctx, provider, input.URL)
}

func (g *implGateway) runProvider(ctx context.Context, provider Provider, raw string) (domain.AudioAsset, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return domain.AudioAsset{}, &domain.AcquisitionError{Provider: provider.Name(), Err: err}
	}

	path, err := provider.Download(ctx, raw, g.outputDir)
	if err != nil {
		return domain.AudioAsset{}, &domain.AcquisitionError{Provider: provider.Name(), Err: err}
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		path, info, err = latestAudioFile(g.outputDir)
		if err != nil {
			return domain.AudioAsset{}, &domain.AcquisitionError{Provider: provider.Name(), Err: err}
		}
	}

	return domain.AudioAsset{
		Path:     path,
		Size:     info.Size(),
		Provider: provider.Name(),
	}, nil
}

// audioScanExtensions are the extensions considered plausible downloader
// output during the fallback directory scan.
var audioScanExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
	".opus": true,
}

func latestAudioFile(dir string) (string, os.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var bestPath string
	var bestInfo os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !audioScanExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if bestInfo == nil || info.ModTime().After(bestInfo.ModTime()) {
			bestPath = filepath.Join(dir, entry.Name())
			bestInfo = info
		}
	}

	if bestInfo == nil {
		return "", nil, domain.ErrNoAudioFound
	}
	return bestPath, bestInfo, nil
}
