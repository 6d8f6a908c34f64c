package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"a4-doc-editor/backend/internal/config"
	apperrors "a4-doc-editor/backend/pkg/errors"
	"a4-doc-editor/backend/pkg/metrics"
)

// openAIClient is the chat-completions implementation of AIClient.
type openAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIClient creates a new OpenAI client; the API key is required.
func NewOpenAIClient(cfg config.ProviderConfig) (AIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &openAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}, nil
}

func (c *openAIClient) Provider() string { return "openai" }

func (c *openAIClient) Model() string { return c.model }

// GenerateContent sends instruction as one user message.
func (c *openAIClient) GenerateContent(ctx context.Context, instruction string) (text string, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
		}
		metrics.LLMCallTotal.WithLabelValues(c.Provider(), c.model, status).Inc()
		metrics.LLMCallDuration.WithLabelValues(c.Provider(), c.model).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: instruction},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "openai request failed")
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apperrors.ErrUnexpectedResponse
	}
	return resp.Choices[0].Message.Content, nil
}
