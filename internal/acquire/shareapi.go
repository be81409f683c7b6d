package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"media-summarizer/internal/config"
	"media-summarizer/internal/domain"
	"media-summarizer/internal/logger"
	"media-summarizer/pkg/executor"
)

const defaultShareAPIURL = "https://api.tikhub.io/api/v1/douyin/app/v3/fetch_one_video_by_share_url"

// shareURLPattern pulls the actual link out of a share string. Share
// text copied from the app wraps the URL in prose, emoji, and tracking
// tokens, none of which the metadata API accepts.
var shareURLPattern = regexp.MustCompile(`https?://[^\s'"]*(?:douyin\.com|tiktok\.com)[^\s'"]*`)

// ExtractShareURL isolates the canonical URL from free-form share text.
// Returns the input unchanged when no link is recognized.
func ExtractShareURL(text string) string {
	match := shareURLPattern.FindString(text)
	if match == "" {
		return strings.TrimSpace(text)
	}
	// Trailing junk can survive the character class (e.g. "url|token").
	match = strings.Split(match, "|")[0]
	return strings.TrimSpace(match)
}

// shareAPIProvider resolves short-form share links through a metadata
// API, downloads the direct media stream, and transcodes it to audio.
type shareAPIProvider struct {
	apiURL     string
	httpClient *http.Client
	cfg        *config.Config
	executor   executor.Executor
	logger     logger.Logger
}

func newShareAPIProvider(cfg *config.Config, exec executor.Executor, log logger.Logger) *shareAPIProvider {
	return &shareAPIProvider{
		apiURL:     defaultShareAPIURL,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		cfg:        cfg,
		executor:   exec,
		logger:     log,
	}
}

func (p *shareAPIProvider) Name() string { return "share-api" }

func (p *shareAPIProvider) Download(ctx context.Context, rawInput, outputDir string) (string, error) {
	apiKey := p.cfg.Credential("tikhub")
	if apiKey == "" {
		return "", &domain.MissingCredentialError{Provider: "tikhub"}
	}

	shareURL := ExtractShareURL(rawInput)
	p.logger.Info(ctx, "Resolving share link: %s", shareURL)

	mediaURL, err := p.resolveMediaURL(ctx, shareURL, apiKey)
	if err != nil {
		return "", err
	}

	tag := shortHash(shareURL)
	videoPath := filepath.Join(outputDir, "douyin_temp_"+tag+".mp4")
	audioPath := filepath.Join(outputDir, "douyin_"+tag+".mp3")

	// The intermediate video is large and never part of the result;
	// remove it whether the download completed, the download broke off
	// partway, or ffmpeg failed.
	defer os.Remove(videoPath)

	if err := p.fetchMedia(ctx, mediaURL, videoPath); err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Extracting audio: %s", audioPath)
	args := []string{
		"-i", videoPath,
		"-vn",
		"-acodec", p.cfg.FFmpeg.AudioCodec,
		"-ar", strconv.Itoa(p.cfg.FFmpeg.SampleRate),
		"-ac", strconv.Itoa(p.cfg.FFmpeg.Channels),
		"-b:a", p.cfg.FFmpeg.AudioBitrate,
		"-y",
		audioPath,
	}
	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("audio extraction: %w", err)
	}

	return audioPath, nil
}

type shareURLList struct {
	URLList []string `json:"url_list"`
}

func (l shareURLList) first() string {
	if len(l.URLList) > 0 {
		return l.URLList[0]
	}
	return ""
}

type shareVideoInfo struct {
	PlayAddr     shareURLList `json:"play_addr"`
	DownloadAddr shareURLList `json:"download_addr"`
	BitRate      []struct {
		PlayAddr shareURLList `json:"play_addr"`
	} `json:"bit_rate"`
	PlayURL shareURLList `json:"play_url"`
}

// candidateURL picks the best direct-media URL. play_addr usually holds
// the watermark-free stream, so it wins over everything else.
func (v shareVideoInfo) candidateURL() string {
	if u := v.PlayAddr.first(); u != "" {
		return u
	}
	if u := v.DownloadAddr.first(); u != "" {
		return u
	}
	if len(v.BitRate) > 0 {
		if u := v.BitRate[0].PlayAddr.first(); u != "" {
			return u
		}
	}
	return v.PlayURL.first()
}

type shareAPIResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		AwemeDetail struct {
			Video shareVideoInfo `json:"video"`
		} `json:"aweme_detail"`
		Video    shareVideoInfo `json:"video"`
		VideoURL string         `json:"video_url"`
	} `json:"data"`
}

func (p *shareAPIProvider) resolveMediaURL(ctx context.Context, shareURL, apiKey string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL, nil)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("share_url", shareURL)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("metadata API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("metadata API response: %w", err)
	}

	var payload shareAPIResponse
	if resp.StatusCode != http.StatusOK {
		// Gateways answer errors with HTML as often as JSON; the status
		// line is the only message guaranteed to exist.
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			return "", fmt.Errorf("metadata API error: %s", payload.Message)
		}
		return "", fmt.Errorf("metadata API error: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("metadata API response: %w", err)
	}
	if payload.Code != 200 {
		msg := payload.Message
		if msg == "" {
			msg = fmt.Sprintf("code %d", payload.Code)
		}
		return "", fmt.Errorf("metadata API error: %s", msg)
	}

	if u := payload.Data.AwemeDetail.Video.candidateURL(); u != "" {
		return u, nil
	}
	if u := payload.Data.Video.candidateURL(); u != "" {
		return u, nil
	}
	if payload.Data.VideoURL != "" {
		return payload.Data.VideoURL, nil
	}
	return "", fmt.Errorf("no media URL in metadata API response")
}

func (p *shareAPIProvider) fetchMedia(ctx context.Context, mediaURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("media download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media download: status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("media download: %w", err)
	}
	return nil
}

func shortHash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.Itoa(int(h.Sum32() % 10000))
}
