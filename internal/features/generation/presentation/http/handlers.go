package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"a4-doc-editor/backend/internal/features/generation/application"
	"a4-doc-editor/backend/internal/features/generation/domain"
	"a4-doc-editor/backend/internal/reply"
	apperrors "a4-doc-editor/backend/pkg/errors"
)

// GenerationHandler holds the generation service.
type GenerationHandler struct {
	generationService application.GenerationService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService application.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
	}
}

// GenerateHandler handles a document generation request. Invalid requests
// are rejected before the model is called.
func (h *GenerationHandler) GenerateHandler(c *gin.Context) reply.Reply {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	result, err := h.generationService.GetFormattedDocument(c.Request.Context(), req.Prompt, req.Pages)
	if err != nil {
		if errors.Is(err, apperrors.ErrGenerationFailed) {
			return reply.Error(http.StatusInternalServerError, "Failed to generate the document")
		}
		return reply.ErrorWithDetails(http.StatusInternalServerError, "Internal server error", err.Error())
	}
	return reply.JSON(http.StatusOK, result)
}

func bindError(err error) reply.Reply {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return reply.Error(http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	fields := make(map[string]string, len(verrs))
	missing := false
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
		if fe.Tag() == "required" {
			missing = true
		}
	}
	if missing {
		return reply.ErrorWithDetails(http.StatusBadRequest, "Missing required fields: prompt or pages", fields)
	}
	return reply.ErrorWithDetails(http.StatusBadRequest, "Invalid request: pages must be a positive integer", fields)
}
