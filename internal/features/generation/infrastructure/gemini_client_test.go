package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a4-doc-editor/backend/internal/config"
	apperrors "a4-doc-editor/backend/pkg/errors"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) (AIClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(config.ProviderConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1beta/",
		Model:   "gemini-1.5-flash-latest",
	}, srv.Client())
	require.NoError(t, err)
	return client, srv
}

func TestGeminiClient_GenerateContent(t *testing.T) {
	var calls int
	client, _ := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash-latest:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 1)
		assert.Equal(t, "write something", body.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"<h1>Hi</h1>"}]}}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "write something")

	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", text)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "gemini", client.Provider())
	assert.Equal(t, "gemini-1.5-flash-latest", client.Model())
}

func TestGeminiClient_UnexpectedShape(t *testing.T) {
	bodies := map[string]string{
		"no candidates": `{}`,
		"empty list":    `{"candidates":[]}`,
		"no content":    `{"candidates":[{"finishReason":"SAFETY"}]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.GenerateContent(context.Background(), "x")

			assert.True(t, errors.Is(err, apperrors.ErrUnexpectedResponse))
		})
	}
}

func TestGeminiClient_ErrorStatus(t *testing.T) {
	client, _ := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	})

	_, err := client.GenerateContent(context.Background(), "x")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLLMProvider))
	assert.Contains(t, err.Error(), "status 400")
}

func TestGeminiClient_TransportErrorHidesKey(t *testing.T) {
	client, srv := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.GenerateContent(context.Background(), "x")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLLMProvider))
	assert.NotContains(t, err.Error(), "test-key")
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(config.ProviderConfig{Model: "m"}, nil)

	assert.Error(t, err)
}

func TestNewAIClient(t *testing.T) {
	c, err := NewAIClient("gemini", config.ProviderConfig{APIKey: "k", Model: "gemini-1.5-flash-latest"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", c.Provider())

	c, err = NewAIClient("openai", config.ProviderConfig{APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Provider())
	assert.Equal(t, "gpt-4o-mini", c.Model())

	_, err = NewAIClient("claude", config.ProviderConfig{APIKey: "k"})
	assert.Error(t, err)
}
