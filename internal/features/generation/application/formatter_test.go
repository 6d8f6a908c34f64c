package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"a4-doc-editor/backend/internal/features/generation/domain"
)

func TestFormatDocument(t *testing.T) {
	raw := "```html\n<h1>Title</h1><p>Body</p><div class=\"page-break\"></div><h2>Part</h2>\n```"

	out := FormatDocument(raw)

	assert.Contains(t, out, `<h1 class="text-3xl font-bold mb-4">Title</h1>`)
	assert.Contains(t, out, `<p class="mb-4">Body</p>`)
	assert.Contains(t, out, `<p class="page-break">&nbsp;</p>`)
	assert.Contains(t, out, `<h2 class="text-2xl font-bold mb-3">Part</h2>`)
	assert.NotContains(t, out, "```")
	assert.NotContains(t, out, "html\n<h1")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), documentWrapperOpen))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), wrapperClose))
}

func TestFormatDocument_LeavesAttributedTagsAlone(t *testing.T) {
	out := FormatDocument(`<h1 id="x">Kept</h1><p class="lead">Lead</p>`)

	assert.Contains(t, out, `<h1 id="x">Kept</h1>`)
	assert.Contains(t, out, `<p class="lead">Lead</p>`)
}

func TestFormatDocument_HeadingSpanningLinesIsNotRewritten(t *testing.T) {
	out := FormatDocument("<h1>Two\nLines</h1>")

	assert.Contains(t, out, "<h1>Two\nLines</h1>")
}

func TestFormatSynopsis(t *testing.T) {
	out := FormatSynopsis("RAW")

	assert.True(t, strings.HasPrefix(out, synopsisWrapperOpen))
	assert.True(t, strings.HasSuffix(out, wrapperClose))
	assert.Equal(t, len(domain.SynopsisSections), strings.Count(out, "<p>RAW</p>"))

	last := -1
	for _, section := range domain.SynopsisSections {
		i := strings.Index(out, "<h2>"+section+"</h2><p>RAW</p>")
		assert.Greater(t, i, last, section)
		last = i
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "<h1>Title</h1>", "Title"},
		{"first wins", "<h1>One</h1><h1>Two</h1>", "One"},
		{"attributes", `<h1 class="big">Styled</h1>`, "Styled"},
		{"inline markup", "<h1><em>Bold</em> &amp; Clear</h1>", "Bold & Clear"},
		{"missing", "<p>No heading</p>", domain.DefaultTitle},
		{"empty", "<h1></h1>", domain.DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.raw))
		})
	}
}

func TestIsSynopsis(t *testing.T) {
	assert.True(t, IsSynopsis("write a project synopsis"))
	assert.False(t, IsSynopsis("Synopsis of a thesis"))
	assert.False(t, IsSynopsis("an essay"))
}

func TestBuildInstruction(t *testing.T) {
	got := BuildInstruction("solar power", 3, 500)

	assert.Contains(t, got, "following prompt: solar power.")
	assert.Contains(t, got, "approximately 1500 words long to fill 3 A4 pages")
	assert.Contains(t, got, `<div class="page-break"></div>`)
	assert.Contains(t, got, "approximately every 500 words")
}
