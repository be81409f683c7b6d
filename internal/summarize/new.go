package summarize

import (
	"fmt"

	"media-summarizer/internal/config"
	"media-summarizer/internal/domain"
	"media-summarizer/internal/logger"
)

// ProviderTag identifies a summarization backend. The set is closed:
// constructing an engine with an unknown tag is an error, not a
// runtime fallback.
type ProviderTag string

const (
	ProviderDeepSeek  ProviderTag = "deepseek"
	ProviderOpenAI    ProviderTag = "openai"
	ProviderAnthropic ProviderTag = "anthropic"
	ProviderGemini    ProviderTag = "gemini"
)

type implEngine struct {
	provider    Provider
	logger      logger.Logger
	model       string
	maxChunkLen int
	maxPasses   int
}

// New creates a summarization Engine for the provider selected in the
// config. Fails fast when the provider is unknown or has no credential.
func New(cfg *config.Config, log logger.Logger) (Engine, error) {
	provider, err := newProvider(ProviderTag(cfg.Summarize.Provider), cfg)
	if err != nil {
		return nil, err
	}

	return &implEngine{
		provider:    provider,
		logger:      log,
		model:       cfg.Summarize.Model,
		maxChunkLen: cfg.Summarize.MaxChunkLen,
		maxPasses:   cfg.Summarize.MaxPasses,
	}, nil
}

// NewForTest builds an Engine over an explicit provider.
func NewForTest(provider Provider, log logger.Logger, model string, maxChunkLen, maxPasses int) Engine {
	return &implEngine{
		provider:    provider,
		logger:      log,
		model:       model,
		maxChunkLen: maxChunkLen,
		maxPasses:   maxPasses,
	}
}

func newProvider(tag ProviderTag, cfg *config.Config) (Provider, error) {
	key := cfg.Credential(string(tag))

	switch tag {
	case ProviderDeepSeek, ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		if key == "" {
			return nil, &domain.MissingCredentialError{Provider: string(tag)}
		}
	default:
		return nil, fmt.Errorf("unknown summarization provider %q", tag)
	}

	switch tag {
	case ProviderDeepSeek:
		return newOpenAICompatProvider(string(tag), key, "https://api.deepseek.com/v1"), nil
	case ProviderOpenAI:
		return newOpenAICompatProvider(string(tag), key, ""), nil
	case ProviderAnthropic:
		return newAnthropicProvider(key), nil
	default:
		return newGeminiProvider(key), nil
	}
}
