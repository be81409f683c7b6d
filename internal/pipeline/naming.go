package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"media-summarizer/internal/acquire"
	"media-summarizer/internal/domain"
)

const timestampLayout = "20060102_150405"

var (
	reBilibiliID = regexp.MustCompile(`BV[0-9A-Za-z]+`)
	reDouyinID   = regexp.MustCompile(`/video/(\d+)`)
	reUnsafe     = regexp.MustCompile(`[^\w\-.]+`)
)

// OutputBaseName builds the deterministic artifact stem
// <platform>_<shortID>_<YYYYMMDD_HHMMSS>. Two jobs for the same input
// submitted within the same second share a stem; the later write wins.
func OutputBaseName(input domain.Input, now time.Time) string {
	platform, id := identify(input)
	return fmt.Sprintf("%s_%s_%s", platform, id, now.Format(timestampLayout))
}

func identify(input domain.Input) (platform, id string) {
	if input.Kind == domain.InputLocalFile {
		return acquire.PlatformLocal, localID(input.Path)
	}

	platform = acquire.Classify(input.URL)
	switch platform {
	case acquire.PlatformBilibili:
		id = truncate(reBilibiliID.FindString(input.URL), 10)
	case acquire.PlatformYouTube:
		id = truncate(youtubeID(input.URL), 11)
	case acquire.PlatformDouyin:
		if m := reDouyinID.FindStringSubmatch(input.URL); m != nil {
			id = truncate(m[1], 10)
		}
	default:
		platform = "unknown"
	}

	if id == "" {
		id = "unknown"
	}
	return platform, id
}

func youtubeID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if strings.Contains(u.Host, "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	return ""
}

func localID(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.Trim(reUnsafe.ReplaceAllString(stem, "_"), "_")
	if stem == "" {
		return "unknown"
	}
	return truncate(stem, 10)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
