// Package router assembles the gin engine.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"a4-doc-editor/backend/internal/config"
	editor_http "a4-doc-editor/backend/internal/features/editor/presentation/http"
	generation_http "a4-doc-editor/backend/internal/features/generation/presentation/http"
	"a4-doc-editor/backend/internal/middleware"
	"a4-doc-editor/backend/internal/reply"
)

// Handlers are the feature handlers served by the engine.
type Handlers struct {
	Generation *generation_http.GenerationHandler
	Editor     *editor_http.EditorHandler
}

// New builds the engine with all routes registered.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		gin.Logger(),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CORS(cfg.Security.CORS),
	)
	if cfg.Observability.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api")
	{
		api.POST("/generate", reply.Gin(h.Generation.GenerateHandler))

		editorGroup := api.Group("/editor")
		{
			editorGroup.GET("/config", reply.Gin(h.Editor.GetConfigHandler))
			editorGroup.GET("/toolbar", reply.Gin(h.Editor.GetToolbarHandler))
			editorGroup.POST("/toolbar/decorate", reply.Gin(h.Editor.DecorateToolbarHandler))
			editorGroup.POST("/image", reply.Gin(h.Editor.InsertImageHandler))
			editorGroup.POST("/surface", reply.Gin(h.Editor.RenderSurfaceHandler))
		}
	}
	r.GET("/editor", reply.Gin(h.Editor.EditorPageHandler))

	r.NoMethod(reply.Gin(methodNotAllowed(r)))
	r.NoRoute(reply.Gin(func(c *gin.Context) reply.Reply {
		return reply.Error(http.StatusNotFound, "Not found")
	}))

	return r
}

// methodNotAllowed answers with the methods registered for the path.
func methodNotAllowed(r *gin.Engine) reply.Handler {
	return func(c *gin.Context) reply.Reply {
		var allowed []string
		for _, route := range r.Routes() {
			if route.Path == c.Request.URL.Path {
				allowed = append(allowed, route.Method)
			}
		}
		sort.Strings(allowed)
		return reply.Error(http.StatusMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", c.Request.Method)).
			WithHeader("Allow", strings.Join(allowed, ", "))
	}
}
