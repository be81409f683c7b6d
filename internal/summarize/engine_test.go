package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-summarizer/internal/config"
	"media-summarizer/internal/domain"
	"media-summarizer/internal/logger"
)

// testConfig builds a default config with no credentials in either the
// environment or the key map for the given provider.
func testConfig(t *testing.T, provider string) *config.Config {
	t.Helper()
	t.Setenv(strings.ToUpper(provider)+"_API_KEY", "")

	cfg := config.Default()
	cfg.Summarize.Provider = provider
	return cfg
}

type stubProvider struct {
	calls   []string
	respond func(prompt string) (string, error)
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) SummarizeChunk(_ context.Context, prompt, _ string) (string, error) {
	p.calls = append(p.calls, prompt)
	return p.respond(prompt)
}

func TestSummarizeSmallTextSingleCall(t *testing.T) {
	provider := &stubProvider{respond: func(prompt string) (string, error) {
		return "SUM:" + prompt[:20], nil
	}}
	engine := NewForTest(provider, logger.New("error", "text"), "test-model", 15000, 5)

	text := strings.Repeat("a", 5000)
	out, err := engine.Summarize(context.Background(), text, "condense this")
	require.NoError(t, err)

	require.Len(t, provider.calls, 1)
	assert.Equal(t, "SUM:"+provider.calls[0][:20], out)
	assert.True(t, strings.HasPrefix(provider.calls[0], "condense this\n"))
}

func TestSummarizeOversizedTextChunksOnce(t *testing.T) {
	provider := &stubProvider{respond: func(string) (string, error) {
		return strings.Repeat("s", 50), nil
	}}
	engine := NewForTest(provider, logger.New("error", "text"), "test-model", 15000, 5)

	// 320 paragraphs of 100 chars each, 32k total with separators.
	paragraphs := make([]string, 320)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("p", 100)
	}
	text := strings.Join(paragraphs, "\n")

	out, err := engine.Summarize(context.Background(), text, "condense")
	require.NoError(t, err)

	assert.Len(t, provider.calls, 3)
	assert.Equal(t, strings.Repeat("s", 50)+"\n\n"+strings.Repeat("s", 50)+"\n\n"+strings.Repeat("s", 50), out)
}

func TestSummarizeReappliesUntilUnderBound(t *testing.T) {
	pass := 0
	provider := &stubProvider{respond: func(string) (string, error) {
		pass++
		// First round keeps chunks long enough that the joined result
		// exceeds the bound; later calls shrink.
		if pass <= 3 {
			return strings.Repeat("x", 90), nil
		}
		return "short", nil
	}}
	engine := NewForTest(provider, logger.New("error", "text"), "test-model", 200, 5)

	text := strings.Repeat("line\n", 200)
	out, err := engine.Summarize(context.Background(), text, "p")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out), 200)
	assert.Greater(t, len(provider.calls), 3)
}

func TestSummarizeNonConvergingFails(t *testing.T) {
	provider := &stubProvider{respond: func(string) (string, error) {
		// Never shrinks below the bound.
		return strings.Repeat("x", 150), nil
	}}
	engine := NewForTest(provider, logger.New("error", "text"), "test-model", 200, 3)

	text := strings.Repeat("line\n", 200)
	_, err := engine.Summarize(context.Background(), text, "p")
	require.Error(t, err)

	var sumErr *domain.SummarizationError
	require.ErrorAs(t, err, &sumErr)
	var convErr *domain.ConvergenceError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, 3, convErr.Passes)
}

func TestSummarizeProviderErrorWrapped(t *testing.T) {
	provider := &stubProvider{respond: func(string) (string, error) {
		return "", errors.New("rate limited")
	}}
	engine := NewForTest(provider, logger.New("error", "text"), "test-model", 15000, 5)

	_, err := engine.Summarize(context.Background(), "some transcript", "p")
	require.Error(t, err)

	var sumErr *domain.SummarizationError
	require.ErrorAs(t, err, &sumErr)
	assert.Equal(t, "stub", sumErr.Provider)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestNewProviderMissingCredential(t *testing.T) {
	cfg := testConfig(t, "anthropic")
	_, err := newProvider(ProviderAnthropic, cfg)
	require.Error(t, err)

	var missing *domain.MissingCredentialError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "anthropic", missing.Provider)
}

func TestNewProviderUnknownTag(t *testing.T) {
	cfg := testConfig(t, "deepseek")
	_, err := newProvider(ProviderTag("mystery"), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestAnthropicProviderParsesContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		require.Len(t, req.Messages, 1)

		fmt.Fprint(w, `{"content":[{"type":"text","text":"the summary"}]}`)
	}))
	defer srv.Close()

	p := newAnthropicProvider("test-key")
	p.baseURL = srv.URL

	out, err := p.SummarizeChunk(context.Background(), "prompt text", "claude-test")
	require.NoError(t, err)
	assert.Equal(t, "the summary", out)
}

func TestAnthropicProviderSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"overloaded"}}`)
	}))
	defer srv.Close()

	p := newAnthropicProvider("test-key")
	p.baseURL = srv.URL

	_, err := p.SummarizeChunk(context.Background(), "prompt", "claude-test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestPromptByNameFallsBackToDefault(t *testing.T) {
	assert.Equal(t, promptTemplates["default"], PromptByName("no-such-template"))
	assert.Equal(t, promptTemplates["concise"], PromptByName("concise"))
	assert.Contains(t, PromptNames(), DefaultPromptName)
}
