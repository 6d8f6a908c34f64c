package application

import (
	"context"
	"time"

	"a4-doc-editor/backend/internal/features/generation/domain"
	"a4-doc-editor/backend/internal/features/generation/infrastructure"
	apperrors "a4-doc-editor/backend/pkg/errors"
	"a4-doc-editor/backend/pkg/logger"
	"a4-doc-editor/backend/pkg/metrics"
)

// GenerationService defines the interface for the document generation service.
type GenerationService interface {
	GetFormattedDocument(ctx context.Context, prompt string, pages int) (*domain.GenerationResult, error)
}

// generationService is the implementation of GenerationService.
type generationService struct {
	client       infrastructure.AIClient
	wordsPerPage int
}

// NewGenerationService creates a new instance of generationService.
func NewGenerationService(client infrastructure.AIClient, wordsPerPage int) GenerationService {
	if wordsPerPage <= 0 {
		wordsPerPage = 500
	}
	return &generationService{client: client, wordsPerPage: wordsPerPage}
}

// GetFormattedDocument asks the model for a document of the given length and
// returns it formatted for the editor. The model is called exactly once. Any
// failure is logged and reported as ErrGenerationFailed.
func (s *generationService) GetFormattedDocument(ctx context.Context, prompt string, pages int) (*domain.GenerationResult, error) {
	kind := "document"
	if IsSynopsis(prompt) {
		kind = "synopsis"
	}
	start := time.Now()
	metrics.DocumentRequestedPages.Observe(float64(pages))

	instruction := BuildInstruction(prompt, pages, s.wordsPerPage)
	logger.Info(ctx, "generating document",
		"kind", kind,
		"pages", pages,
		"words", pages*s.wordsPerPage,
		"provider", s.client.Provider(),
		"model", s.client.Model(),
	)

	raw, err := s.client.GenerateContent(ctx, instruction)
	metrics.DocumentGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DocumentGenerationTotal.WithLabelValues(kind, "failed").Inc()
		logger.Error(ctx, "error generating document", err, "kind", kind)
		return nil, apperrors.Wrap(err, apperrors.CodeGenerationFailed, "Failed to generate the document")
	}

	var result domain.GenerationResult
	if kind == "synopsis" {
		result = domain.GenerationResult{FormattedText: FormatSynopsis(raw), Title: domain.SynopsisTitle}
	} else {
		result = domain.GenerationResult{FormattedText: FormatDocument(raw), Title: ExtractTitle(raw)}
	}

	metrics.DocumentGenerationTotal.WithLabelValues(kind, "success").Inc()
	logger.Info(ctx, "document generated", "kind", kind, "title", result.Title, "bytes", len(result.FormattedText))
	return &result, nil
}
