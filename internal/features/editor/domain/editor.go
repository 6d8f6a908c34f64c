package domain

import (
	"slices"
)

// ToolbarControl is one control of the editor toolbar. A control with
// Picker set renders as a dropdown; Options lists its values, where the
// empty string stands for the widget's default value.
type ToolbarControl struct {
	Format  string   `json:"format"`
	Value   string   `json:"value,omitempty"`
	Picker  bool     `json:"picker,omitempty"`
	Options []string `json:"options,omitempty"`
}

// ToolbarGroup is a visually separated run of toolbar controls.
type ToolbarGroup []ToolbarControl

// EditorConfiguration is the fixed setup of the rich-text editor.
type EditorConfiguration struct {
	AllowedFormats       []string          `json:"allowedFormats"`
	ToolbarLayout        []ToolbarGroup    `json:"toolbarLayout"`
	TooltipText          map[string]string `json:"tooltipText"`
	ToolbarClass         string            `json:"toolbarClass"`
	Placeholder          string            `json:"placeholder"`
	ClipboardMatchVisual bool              `json:"clipboardMatchVisual"`
}

// Tooltip returns the help text of format, if any.
func (c *EditorConfiguration) Tooltip(format string) (string, bool) {
	text, ok := c.TooltipText[format]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

// Allows reports whether format is one of the allowed formats.
func (c *EditorConfiguration) Allows(format string) bool {
	return slices.Contains(c.AllowedFormats, format)
}

// Clone returns a deep copy so callers cannot mutate shared configuration.
func (c *EditorConfiguration) Clone() *EditorConfiguration {
	cp := *c
	cp.AllowedFormats = slices.Clone(c.AllowedFormats)
	cp.ToolbarLayout = make([]ToolbarGroup, len(c.ToolbarLayout))
	for i, group := range c.ToolbarLayout {
		g := make(ToolbarGroup, len(group))
		for j, ctl := range group {
			ctl.Options = slices.Clone(ctl.Options)
			g[j] = ctl
		}
		cp.ToolbarLayout[i] = g
	}
	cp.TooltipText = make(map[string]string, len(c.TooltipText))
	for k, v := range c.TooltipText {
		cp.TooltipText[k] = v
	}
	return &cp
}

// ToolbarFormats returns the distinct formats of the layout in order.
func (c *EditorConfiguration) ToolbarFormats() []string {
	var formats []string
	for _, group := range c.ToolbarLayout {
		for _, ctl := range group {
			if !slices.Contains(formats, ctl.Format) {
				formats = append(formats, ctl.Format)
			}
		}
	}
	return formats
}

// Normalize fills the derived fields: when AllowedFormats is empty every
// toolbar format except "clean" is allowed.
func (c *EditorConfiguration) Normalize() {
	if len(c.AllowedFormats) == 0 {
		for _, f := range c.ToolbarFormats() {
			if f != "clean" {
				c.AllowedFormats = append(c.AllowedFormats, f)
			}
		}
	}
	if c.TooltipText == nil {
		c.TooltipText = map[string]string{}
	}
}

// DefaultConfiguration is the snow-theme toolbar the editor ships with.
func DefaultConfiguration() *EditorConfiguration {
	cfg := &EditorConfiguration{
		ToolbarLayout: []ToolbarGroup{
			{{Format: "header", Picker: true, Options: []string{"1", "2", ""}}},
			{{Format: "bold"}, {Format: "italic"}, {Format: "underline"}, {Format: "strike"}},
			{{Format: "list", Value: "ordered"}, {Format: "list", Value: "bullet"}},
			{{Format: "font", Picker: true, Options: []string{"", "serif", "monospace"}}},
			{{Format: "size", Picker: true, Options: []string{"small", "", "large", "huge"}}},
			{{Format: "link"}, {Format: "image"}},
			{{Format: "align", Picker: true, Options: []string{"", "center", "right", "justify"}}},
			{{Format: "clean"}},
		},
		TooltipText: map[string]string{
			"header":    "Heading Style",
			"bold":      "Bold",
			"italic":    "Italic",
			"underline": "Underline",
			"strike":    "Strikethrough",
			"list":      "List",
			"link":      "Insert Link",
			"image":     "Insert Image",
			"align":     "Text Alignment",
			"clean":     "Clear Formatting",
		},
		ToolbarClass:         "bg-gray-300",
		Placeholder:          "Your content here...",
		ClipboardMatchVisual: false,
	}
	cfg.Normalize()
	return cfg
}

// TextAlign is a paragraph alignment keyword.
type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignRight   TextAlign = "right"
	AlignCenter  TextAlign = "center"
	AlignJustify TextAlign = "justify"
)

// EditorProps are the presentation parameters the caller controls.
type EditorProps struct {
	FontSize    float64   `form:"fontSize" json:"fontSize" binding:"omitempty,gt=0"`
	LineSpacing float64   `form:"lineSpacing" json:"lineSpacing" binding:"omitempty,gt=0"`
	TextAlign   TextAlign `form:"textAlign" json:"textAlign" binding:"omitempty,oneof=left right center justify"`
}

// WithDefaults returns p with unset fields filled in.
func (p EditorProps) WithDefaults() EditorProps {
	if p.FontSize == 0 {
		p.FontSize = 12
	}
	if p.LineSpacing == 0 {
		p.LineSpacing = 1.5
	}
	if p.TextAlign == "" {
		p.TextAlign = AlignLeft
	}
	return p
}
