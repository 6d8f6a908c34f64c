package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"a4-doc-editor/backend/internal/config"
	apperrors "a4-doc-editor/backend/pkg/errors"
	"a4-doc-editor/backend/pkg/metrics"
)

const maxErrorBody = 512

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
}

// geminiClient calls the generateContent method of the Generative Language API.
type geminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

// NewGeminiClient creates a Gemini client; the API key is required.
func NewGeminiClient(cfg config.ProviderConfig, httpClient *http.Client) (AIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &geminiClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
	}, nil
}

func (c *geminiClient) Provider() string { return "gemini" }

func (c *geminiClient) Model() string { return c.model }

// GenerateContent posts instruction once; there is no retry.
func (c *geminiClient) GenerateContent(ctx context.Context, instruction string) (text string, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
		}
		metrics.LLMCallTotal.WithLabelValues(c.Provider(), c.model, status).Inc()
		metrics.LLMCallDuration.WithLabelValues(c.Provider(), c.model).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(generateContentRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: instruction}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?%s", c.baseURL, url.PathEscape(c.model), url.Values{"key": {c.apiKey}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the key; report the transport error without it.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "gemini request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", apperrors.Wrap(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
			apperrors.CodeLLMProviderError, "gemini returned an error")
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "failed to decode gemini response")
	}

	if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.ErrUnexpectedResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
