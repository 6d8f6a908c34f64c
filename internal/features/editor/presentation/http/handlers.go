package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"a4-doc-editor/backend/internal/features/editor/application"
	"a4-doc-editor/backend/internal/features/editor/domain"
	"a4-doc-editor/backend/internal/reply"
)

// maxImageSize bounds uploaded images; larger files are rejected.
const maxImageSize = 10 << 20

// EditorHandler holds the editor service.
type EditorHandler struct {
	editorService application.EditorService
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(editorService application.EditorService) *EditorHandler {
	return &EditorHandler{
		editorService: editorService,
	}
}

// DecorateRequest carries the toolbar markup of a mounted editor.
type DecorateRequest struct {
	Markup string `json:"markup" binding:"required"`
}

// SurfaceRequest is the editor content plus its presentation parameters.
type SurfaceRequest struct {
	Value string `json:"value"`
	domain.EditorProps
}

// GetConfigHandler returns the editor configuration.
func (h *EditorHandler) GetConfigHandler(c *gin.Context) reply.Reply {
	return reply.JSON(http.StatusOK, h.editorService.Configuration())
}

// GetToolbarHandler returns the rendered, decorated toolbar.
func (h *EditorHandler) GetToolbarHandler(c *gin.Context) reply.Reply {
	markup, err := h.editorService.RenderToolbar()
	if err != nil {
		return reply.FromError(err)
	}
	return reply.JSON(http.StatusOK, gin.H{"markup": markup})
}

// DecorateToolbarHandler handles the mount event of an editor: it decorates
// the toolbar markup the client reports.
func (h *EditorHandler) DecorateToolbarHandler(c *gin.Context) reply.Reply {
	var req DecorateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return reply.Error(http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	res, err := h.editorService.DecorateToolbar(c.Request.Context(), req.Markup)
	if err != nil {
		return reply.FromError(err)
	}
	return reply.JSON(http.StatusOK, res)
}

// InsertImageHandler handles an image chosen in the file picker. The form
// carries the file, the current document as Delta JSON and the cursor index.
func (h *EditorHandler) InsertImageHandler(c *gin.Context) reply.Reply {
	fh, err := c.FormFile("file")
	if err != nil {
		return reply.Error(http.StatusBadRequest, "Missing required field: file")
	}
	if fh.Size > maxImageSize {
		return reply.Error(http.StatusRequestEntityTooLarge, "Image file is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return reply.FromError(err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return reply.FromError(err)
	}

	var doc domain.Delta
	if raw := c.PostForm("document"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return reply.Error(http.StatusBadRequest, "Invalid document: "+err.Error())
		}
	}

	var sel *domain.Selection
	if raw := c.PostForm("index"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil || index < 0 {
			return reply.Error(http.StatusBadRequest, "Invalid index: must be a non-negative integer")
		}
		sel = &domain.Selection{Index: index}
	}

	res, err := h.editorService.InsertImage(c.Request.Context(), &doc, sel, application.ImageFile{Name: fh.Filename, Data: data})
	if err != nil {
		return reply.FromError(err)
	}
	return reply.JSON(http.StatusOK, res)
}

// RenderSurfaceHandler renders the editor page for the posted content.
func (h *EditorHandler) RenderSurfaceHandler(c *gin.Context) reply.Reply {
	var req SurfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return reply.Error(http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	markup, err := h.editorService.RenderSurface(req.EditorProps, req.Value)
	if err != nil {
		return reply.FromError(err)
	}
	return reply.JSON(http.StatusOK, gin.H{"markup": markup})
}

// EditorPageHandler serves an empty editor page; presentation parameters
// come from the query string.
func (h *EditorHandler) EditorPageHandler(c *gin.Context) reply.Reply {
	var props domain.EditorProps
	if err := c.ShouldBindQuery(&props); err != nil {
		return reply.Error(http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	surface, err := h.editorService.RenderSurface(props, "")
	if err != nil {
		return reply.FromError(err)
	}
	return reply.HTML(http.StatusOK, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Editor</title></head><body>"+surface+"</body></html>")
}
