package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/microcosm-cc/bluemonday"

	"a4-doc-editor/backend/internal/features/editor/domain"
	"a4-doc-editor/backend/pkg/logger"
)

// EditorConfigService provides the editor configuration.
type EditorConfigService interface {
	LoadEditorConfig() (*domain.EditorConfiguration, error)
}

// editorConfigService is the implementation of EditorConfigService.
type editorConfigService struct {
	configPath string
	policy     *bluemonday.Policy
}

// NewEditorConfigService creates a new instance of editorConfigService.
func NewEditorConfigService(configPath string) EditorConfigService {
	return &editorConfigService{
		configPath: configPath,
		policy:     bluemonday.StrictPolicy(),
	}
}

// LoadEditorConfig loads the editor configuration from the configured JSON
// file. A missing file yields the built-in configuration.
func (s *editorConfigService) LoadEditorConfig() (*domain.EditorConfiguration, error) {
	ctx := context.Background()

	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn(ctx, "editor config file not found, using built-in configuration", "path", absPath)
		return domain.DefaultConfiguration(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read editor config file %s: %w", absPath, err)
	}

	var editorConfig domain.EditorConfiguration
	if err := json.Unmarshal(data, &editorConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal editor config from %s: %w", absPath, err)
	}

	if err := validateEditorConfig(&editorConfig); err != nil {
		return nil, fmt.Errorf("invalid editor config %s: %w", absPath, err)
	}

	// Tooltips end up in markup attributes; keep them plain text.
	for format, text := range editorConfig.TooltipText {
		editorConfig.TooltipText[format] = s.policy.Sanitize(text)
	}
	editorConfig.Normalize()

	logger.Debug(ctx, "editor config loaded", "path", absPath, "formats", len(editorConfig.AllowedFormats))
	return &editorConfig, nil
}

func validateEditorConfig(c *domain.EditorConfiguration) error {
	if len(c.ToolbarLayout) == 0 {
		return errors.New("toolbarLayout must not be empty")
	}
	for i, group := range c.ToolbarLayout {
		if len(group) == 0 {
			return fmt.Errorf("toolbar group %d is empty", i)
		}
		for j, ctl := range group {
			if ctl.Format == "" {
				return fmt.Errorf("toolbar group %d control %d has no format", i, j)
			}
		}
	}
	return nil
}
