package summarize

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAICompatProvider serves every backend speaking the OpenAI
// chat-completions protocol; DeepSeek differs from OpenAI only in base
// URL and model names.
type openAICompatProvider struct {
	name   string
	client openai.Client
}

func newOpenAICompatProvider(name, apiKey, baseURL string) *openAICompatProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAICompatProvider{
		name:   name,
		client: openai.NewClient(opts...),
	}
}

func (p *openAICompatProvider) Name() string { return p.name }

func (p *openAICompatProvider) SummarizeChunk(ctx context.Context, prompt, model string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.6),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", p.name)
	}
	return resp.Choices[0].Message.Content, nil
}
