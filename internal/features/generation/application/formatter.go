package application

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"a4-doc-editor/backend/internal/features/generation/domain"
)

const (
	documentWrapperOpen = `<div style="font-family: Arial, sans-serif; line-height: 1.6;">`
	synopsisWrapperOpen = `<div style="font-family: Times New Roman; line-height: 1.5; margin: 1 inch;">`
	wrapperClose        = `</div>`
)

// substitution is one literal rewrite of model output. Patterns do not match
// across line breaks.
type substitution struct {
	pattern *regexp.Regexp
	replace string
}

// Applied in order.
var substitutions = []substitution{
	{regexp.MustCompile(`<div class="page-break"></div>`), `<p class="page-break">&nbsp;</p>`},
	{regexp.MustCompile(`<h1>(.*?)</h1>`), `<h1 class="text-3xl font-bold mb-4">${1}</h1>`},
	{regexp.MustCompile(`<h2>(.*?)</h2>`), `<h2 class="text-2xl font-bold mb-3">${1}</h2>`},
	{regexp.MustCompile(`<p>`), `<p class="mb-4">`},
	{regexp.MustCompile("```html"), ``},
	{regexp.MustCompile("```"), ``},
}

var titlePattern = regexp.MustCompile(`<h1.*?>(.*?)</h1>`)

var titlePolicy = bluemonday.StrictPolicy()

// FormatDocument rewrites raw model markup into the styled document body.
func FormatDocument(raw string) string {
	text := raw
	for _, s := range substitutions {
		text = s.pattern.ReplaceAllString(text, s.replace)
	}
	return "\n" + documentWrapperOpen + "\n" + text + "\n" + wrapperClose + "\n"
}

// FormatSynopsis lays raw out under the fixed synopsis headings. Each section
// carries the whole of raw.
func FormatSynopsis(raw string) string {
	var b strings.Builder
	b.WriteString(synopsisWrapperOpen)
	for _, section := range domain.SynopsisSections {
		b.WriteString("<h2>")
		b.WriteString(section)
		b.WriteString("</h2><p>")
		b.WriteString(raw)
		b.WriteString("</p>")
	}
	b.WriteString(wrapperClose)
	return b.String()
}

// ExtractTitle returns the plain text of the first h1 in raw, or the default
// title when there is none.
func ExtractTitle(raw string) string {
	m := titlePattern.FindStringSubmatch(raw)
	if m == nil {
		return domain.DefaultTitle
	}
	title := strings.TrimSpace(html.UnescapeString(titlePolicy.Sanitize(m[1])))
	if title == "" {
		return domain.DefaultTitle
	}
	return title
}

// IsSynopsis reports whether prompt asks for a synopsis. The match is case
// sensitive.
func IsSynopsis(prompt string) bool {
	return strings.Contains(prompt, domain.SynopsisKeyword)
}
