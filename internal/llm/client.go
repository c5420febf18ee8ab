package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"catalog-assistant/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-70b-8192"

	SystemPrompt  = "You are a helpful eCommerce assistant. Answer clearly and ask clarifying questions if needed."
	FallbackReply = "Sorry, I’m having trouble thinking right now. Please try again later."

	temperature = 0.7
)

var (
	ErrNotConfigured = errors.New("llm api key is not configured")
	ErrEmptyResponse = errors.New("llm returned no choices")
)

// Client answers a single user prompt.
type Client interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type client struct {
	api     *openai.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient creates a chat completions client for any OpenAI-compatible
// endpoint. A nil httpClient gets one with cfg.Timeout.
func NewClient(cfg config.LLMConfig, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = baseURL
	apiCfg.HTTPClient = httpClient

	return &client{
		api:     openai.NewClientWithConfig(apiCfg),
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
	}
}

// Ask sends the system prompt plus prompt and returns the first choice.
// Upstream failures surface as *openai.APIError or *openai.RequestError.
func (c *client) Ask(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
