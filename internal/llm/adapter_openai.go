package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements Adapter using OpenAI's chat completions API
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

// NewOpenAIAdapter creates a new OpenAI LLM adapter
func NewOpenAIAdapter(cfg Config) *OpenAIAdapter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (a *OpenAIAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	model := a.config.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return chatComplete(ctx, a.client, "openai", model, prompt, a.config)
}

// chatComplete sends prompt as a single user message and returns the first choice
func chatComplete(ctx context.Context, client *openai.Client, label, model, prompt string, cfg Config) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		TopP:        1,
	}

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("%s-llm-adapter: API call failed after %v: %v", label, duration, err)
		return "", Classify(ctx, fmt.Errorf("%s chat completion: %w", label, err))
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s chat completion: no response choices", ErrTransport, label)
	}

	result := resp.Choices[0].Message.Content
	log.Printf("%s-llm-adapter: generated in %v: %q", label, duration, result)
	return result, nil
}
