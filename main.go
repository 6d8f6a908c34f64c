package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"a4-doc-editor/backend/internal/config"
	editor_application "a4-doc-editor/backend/internal/features/editor/application"
	editor_http "a4-doc-editor/backend/internal/features/editor/presentation/http"
	generation_application "a4-doc-editor/backend/internal/features/generation/application"
	"a4-doc-editor/backend/internal/features/generation/infrastructure"
	generation_http "a4-doc-editor/backend/internal/features/generation/presentation/http"
	"a4-doc-editor/backend/internal/router"
	"a4-doc-editor/backend/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load config", err)
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	if envErr != nil {
		logger.Info(ctx, "no .env file found, using environment variables")
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	editorConfig, err := config.NewEditorConfigService(cfg.Editor.ConfigPath).LoadEditorConfig()
	if err != nil {
		logger.Fatal(ctx, "failed to load editor config", err, "path", cfg.Editor.ConfigPath)
	}

	providerName, providerConfig, err := cfg.LLM.Provider()
	if err != nil {
		logger.Fatal(ctx, "invalid llm config", err)
	}
	aiClient, err := infrastructure.NewAIClient(providerName, providerConfig)
	if err != nil {
		logger.Fatal(ctx, "failed to create llm client", err, "provider", providerName)
	}

	// Initialize services
	editorService := editor_application.NewEditorService(editorConfig, "/api/editor/image")
	generationService := generation_application.NewGenerationService(aiClient, cfg.Generation.WordsPerPage)

	r := router.New(cfg, router.Handlers{
		Generation: generation_http.NewGenerationHandler(generationService),
		Editor:     editor_http.NewEditorHandler(editorService),
	})

	addr := cfg.Server.HTTP.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info(ctx, "http server starting", "addr", addr, "provider", providerName, "model", aiClient.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "http server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", err)
	}
	logger.Info(ctx, "server exited")
}
