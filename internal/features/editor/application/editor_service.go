package application

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"a4-doc-editor/backend/internal/features/editor/domain"
	apperrors "a4-doc-editor/backend/pkg/errors"
	"a4-doc-editor/backend/pkg/logger"
	"a4-doc-editor/backend/pkg/metrics"
)

// EditorService defines the interface for the editor application service.
type EditorService interface {
	Configuration() *domain.EditorConfiguration
	RenderToolbar() (string, error)
	DecorateToolbar(ctx context.Context, markup string) (*ToolbarDecoration, error)
	InsertImage(ctx context.Context, doc *domain.Delta, sel *domain.Selection, file ImageFile) (*ImageInsertion, error)
	RenderSurface(props domain.EditorProps, value string) (string, error)
}

// editorService is the implementation of EditorService.
type editorService struct {
	config        *domain.EditorConfiguration
	imageEndpoint string
	policy        *bluemonday.Policy
}

// NewEditorService creates a new instance of editorService. The
// configuration is copied; later changes to editorConfig are not observed.
func NewEditorService(editorConfig *domain.EditorConfiguration, imageEndpoint string) EditorService {
	return &editorService{
		config:        editorConfig.Clone(),
		imageEndpoint: imageEndpoint,
		policy:        contentPolicy(),
	}
}

// Configuration returns a copy of the editor configuration.
func (s *editorService) Configuration() *domain.EditorConfiguration {
	return s.config.Clone()
}

// RenderToolbar renders the configured toolbar with decoration applied.
func (s *editorService) RenderToolbar() (string, error) {
	toolbar := buildToolbar(s.config)
	decorate(toolbar, s.config, s.imageEndpoint)
	return render(toolbar)
}

// DecorateToolbar decorates toolbar markup reported by a mounted editor.
// Markup without a toolbar is returned unchanged.
func (s *editorService) DecorateToolbar(ctx context.Context, markup string) (*ToolbarDecoration, error) {
	nodes, err := parseFragment(markup)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid toolbar markup")
	}

	var res ToolbarDecoration
	for _, n := range nodes {
		if res.ToolbarFound {
			break
		}
		res = decorate(n, s.config, s.imageEndpoint)
	}
	metrics.EditorToolbarDecorations.WithLabelValues(fmt.Sprint(res.ToolbarFound)).Inc()

	if !res.ToolbarFound {
		logger.Debug(ctx, "toolbar not mounted yet, nothing to decorate")
		res.Markup = markup
		return &res, nil
	}

	res.Markup, err = render(nodes...)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// InsertImage embeds file at the cursor of doc and returns the document with
// the cursor moved past the image. A nil selection inserts at the end.
func (s *editorService) InsertImage(ctx context.Context, doc *domain.Delta, sel *domain.Selection, file ImageFile) (*ImageInsertion, error) {
	if !s.config.Allows("image") {
		metrics.EditorImageInsertsTotal.WithLabelValues("rejected").Inc()
		return nil, apperrors.ErrInvalidParam.WithDetail("image format is not enabled")
	}
	if doc == nil {
		doc = &domain.Delta{}
	}
	if err := doc.Validate(); err != nil {
		metrics.EditorImageInsertsTotal.WithLabelValues("rejected").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid document")
	}

	url, mtype, err := dataURL(file.Data)
	if err != nil {
		metrics.EditorImageInsertsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	index := doc.Length()
	if sel != nil {
		index = sel.Index
	}
	at := doc.InsertEmbed(index, "image", url)

	metrics.EditorImageInsertsTotal.WithLabelValues("success").Inc()
	logger.Info(ctx, "image inserted", "file", file.Name, "mime", mtype, "index", at, "bytes", len(file.Data))

	return &ImageInsertion{
		Document:  doc,
		Selection: domain.Selection{Index: at + 1},
		Embed:     url,
		MIMEType:  mtype,
	}, nil
}

// RenderSurface renders the A4 editor page for props holding value.
func (s *editorService) RenderSurface(props domain.EditorProps, value string) (string, error) {
	props = props.WithDefaults()

	content, err := parseFragment(s.policy.Sanitize(value))
	if err != nil {
		return "", err
	}

	toolbar := buildToolbar(s.config)
	decorate(toolbar, s.config, s.imageEndpoint)

	return render(buildSurface(s.config, props, toolbar, content))
}
