package application

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"a4-doc-editor/backend/internal/features/editor/domain"
)

const (
	toolbarClass = "ql-toolbar"
	formatPrefix = "ql-"
	imageHandler = "image-upload"
)

// ToolbarDecoration reports what a decoration pass changed.
type ToolbarDecoration struct {
	Markup       string `json:"markup"`
	ToolbarFound bool   `json:"toolbarFound"`
	Tooltips     int    `json:"tooltips"`
	ImageHandler bool   `json:"imageHandler"`
}

// buildToolbar renders the configured layout the way the snow theme lays
// out its toolbar.
func buildToolbar(cfg *domain.EditorConfiguration) *html.Node {
	toolbar := element(atom.Div, "class", "ql-toolbar ql-snow")
	for _, group := range cfg.ToolbarLayout {
		formats := element(atom.Span, "class", "ql-formats")
		for _, ctl := range group {
			if ctl.Picker {
				formats.AppendChild(buildPicker(ctl))
				continue
			}
			button := element(atom.Button, "type", "button", "class", formatPrefix+ctl.Format)
			if ctl.Value != "" {
				setAttr(button, "value", ctl.Value)
			}
			formats.AppendChild(button)
		}
		toolbar.AppendChild(formats)
	}
	return toolbar
}

func buildPicker(ctl domain.ToolbarControl) *html.Node {
	class := formatPrefix + ctl.Format + " ql-picker"
	if ctl.Format == "align" {
		class += " ql-icon-picker"
	}
	picker := element(atom.Span, "class", class)
	picker.AppendChild(element(atom.Span, "class", "ql-picker-label", "tabindex", "0", "role", "button"))

	options := element(atom.Span, "class", "ql-picker-options", "tabindex", "-1")
	for _, opt := range ctl.Options {
		item := element(atom.Span, "class", "ql-picker-item", "tabindex", "0", "role", "button")
		if opt != "" {
			setAttr(item, "data-value", opt)
		}
		options.AppendChild(item)
	}
	picker.AppendChild(options)
	return picker
}

// controlFormat extracts the format identifier encoded in a control's
// class list, e.g. "ql-bold" -> "bold".
func controlFormat(n *html.Node) string {
	for _, c := range classes(n) {
		if !strings.HasPrefix(c, formatPrefix) {
			continue
		}
		switch c {
		case "ql-picker", "ql-icon-picker", "ql-color-picker", "ql-active":
			continue
		}
		return strings.TrimPrefix(c, formatPrefix)
	}
	return ""
}

// decorate applies the post-mount wiring to the toolbar found under root.
// Every step is a no-op when its target is absent, and running it twice
// yields the same tree.
func decorate(root *html.Node, cfg *domain.EditorConfiguration, imageEndpoint string) ToolbarDecoration {
	var res ToolbarDecoration

	toolbar := find(root, func(n *html.Node) bool { return hasClass(n, toolbarClass) })
	if toolbar == nil {
		return res
	}
	res.ToolbarFound = true

	if cfg.ToolbarClass != "" {
		addClass(toolbar, cfg.ToolbarClass)
	}

	controls := findAll(toolbar, func(n *html.Node) bool {
		return n.DataAtom == atom.Button || hasClass(n, "ql-picker")
	})
	for _, ctl := range controls {
		format := controlFormat(ctl)
		if format == "" {
			continue
		}
		text, ok := cfg.Tooltip(format)
		if !ok {
			continue
		}
		setAttr(ctl, "title", text)
		setAttr(ctl, "data-tooltip", text)
		res.Tooltips++
	}

	image := find(toolbar, func(n *html.Node) bool { return hasClass(n, formatPrefix+"image") })
	if image != nil {
		setAttr(image, "data-handler", imageHandler)
		setAttr(image, "data-accept", "image/*")
		setAttr(image, "data-endpoint", imageEndpoint)
		res.ImageHandler = true
	}

	return res
}
