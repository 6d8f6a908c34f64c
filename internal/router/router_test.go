package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a4-doc-editor/backend/internal/config"
	editor_application "a4-doc-editor/backend/internal/features/editor/application"
	editor_domain "a4-doc-editor/backend/internal/features/editor/domain"
	editor_http "a4-doc-editor/backend/internal/features/editor/presentation/http"
	generation_application "a4-doc-editor/backend/internal/features/generation/application"
	generation_http "a4-doc-editor/backend/internal/features/generation/presentation/http"
)

type stubClient struct {
	reply string
	calls int
}

func (s *stubClient) GenerateContent(context.Context, string) (string, error) {
	s.calls++
	return s.reply, nil
}

func (s *stubClient) Provider() string { return "stub" }

func (s *stubClient) Model() string { return "stub" }

func newTestEngine(t *testing.T, client *stubClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Observability.Metrics = config.MetricsConfig{Enabled: true, Path: "/metrics"}

	editorService := editor_application.NewEditorService(editor_domain.DefaultConfiguration(), "/api/editor/image")
	return New(cfg, Handlers{
		Generation: generation_http.NewGenerationHandler(generation_application.NewGenerationService(client, 500)),
		Editor:     editor_http.NewEditorHandler(editorService),
	})
}

func TestGenerate_EndToEnd(t *testing.T) {
	client := &stubClient{reply: "```html\n<h1>Title</h1><p>Body</p>\n```"}
	r := newTestEngine(t, client)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"a report","pages":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, client.calls)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Title", body["title"])
	assert.Contains(t, body["formattedText"], `<p class="mb-4">Body</p>`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			client := &stubClient{}
			r := newTestEngine(t, client)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(method, "/api/generate", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, "POST", w.Header().Get("Allow"))
			assert.Equal(t, 0, client.calls)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Method "+method+" Not Allowed", body["error"])
		})
	}
}

func TestPing(t *testing.T) {
	r := newTestEngine(t, &stubClient{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestEngine(t, &stubClient{})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a4_doc_editor_http_requests_total")
}

func TestEditorRoutes(t *testing.T) {
	r := newTestEngine(t, &stubClient{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/editor/toolbar", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ql-toolbar")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/editor?fontSize=14&lineSpacing=2&textAlign=center", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "line-height: 2")
}

func TestNotFound(t *testing.T) {
	r := newTestEngine(t, &stubClient{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
