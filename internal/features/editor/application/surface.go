package application

import (
	"fmt"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"a4-doc-editor/backend/internal/features/editor/domain"
)

// A4 page size.
const (
	pageWidth  = "210mm"
	pageHeight = "297mm"
)

// contentPolicy admits the markup the editor and the generator produce,
// including the utility classes and inline styles of generated documents.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").OnElements("div", "p", "span", "h1", "h2", "h3")
	p.AllowStyles("font-family", "line-height", "margin", "text-align", "font-size").Globally()
	p.AllowDataURIImages()
	return p
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// buildSurface lays out the editor page: an A4 sheet holding the toolbar
// and the editable area filled with value.
func buildSurface(cfg *domain.EditorConfiguration, props domain.EditorProps, toolbar *html.Node, value []*html.Node) *html.Node {
	page := element(atom.Div,
		"class", "bg-gray-100 border border-zink-800 rounded-lg p-4 mt-5 mb-4",
		"style", fmt.Sprintf("width: %s; height: %s; margin: 0 auto; line-height: %s; text-align: %s;",
			pageWidth, pageHeight, formatNumber(props.LineSpacing), props.TextAlign),
	)

	quill := element(atom.Div,
		"class", "quill border border-zink-800",
		"style", fmt.Sprintf("font-size: %spt;", formatNumber(props.FontSize)),
	)
	quill.AppendChild(toolbar)

	container := element(atom.Div, "class", "ql-container ql-snow")
	editor := element(atom.Div,
		"class", "ql-editor",
		"contenteditable", "true",
		"data-placeholder", cfg.Placeholder,
	)
	if len(value) == 0 {
		addClass(editor, "ql-blank")
	}
	for _, n := range value {
		editor.AppendChild(n)
	}
	container.AppendChild(editor)
	quill.AppendChild(container)
	page.AppendChild(quill)
	return page
}
