package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"a4-doc-editor/backend/internal/config"
)

// AIClient defines a generic interface for generative-language services.
type AIClient interface {
	// GenerateContent sends instruction as a single user turn and returns
	// the text of the first candidate.
	GenerateContent(ctx context.Context, instruction string) (string, error)

	// Provider names the backing service, e.g. "gemini".
	Provider() string

	// Model names the model requests are sent to.
	Model() string
}

// NewAIClient creates the client for the named provider.
func NewAIClient(provider string, cfg config.ProviderConfig) (AIClient, error) {
	switch provider {
	case "gemini":
		return NewGeminiClient(cfg, &http.Client{Timeout: cfg.Timeout})
	case "openai":
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", provider)
	}
}
