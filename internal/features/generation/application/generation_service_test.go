package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a4-doc-editor/backend/internal/features/generation/domain"
	apperrors "a4-doc-editor/backend/pkg/errors"
)

type fakeAIClient struct {
	reply        string
	err          error
	calls        int
	instructions []string
}

func (f *fakeAIClient) GenerateContent(_ context.Context, instruction string) (string, error) {
	f.calls++
	f.instructions = append(f.instructions, instruction)
	return f.reply, f.err
}

func (f *fakeAIClient) Provider() string { return "fake" }

func (f *fakeAIClient) Model() string { return "fake-model" }

func TestGetFormattedDocument(t *testing.T) {
	client := &fakeAIClient{reply: `<h1>Title</h1><p>Body</p><div class="page-break"></div>`}
	svc := NewGenerationService(client, 500)

	res, err := svc.GetFormattedDocument(context.Background(), "renewable energy", 2)

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, client.instructions[0], "approximately 1000 words long to fill 2 A4 pages")
	assert.Equal(t, "Title", res.Title)
	assert.Contains(t, res.FormattedText, `<h1 class="text-3xl font-bold mb-4">Title</h1>`)
	assert.Contains(t, res.FormattedText, `<p class="mb-4">Body</p>`)
	assert.Contains(t, res.FormattedText, `<p class="page-break">&nbsp;</p>`)
}

func TestGetFormattedDocument_Synopsis(t *testing.T) {
	client := &fakeAIClient{reply: "<h1>Ignored</h1>BODY"}
	svc := NewGenerationService(client, 500)

	res, err := svc.GetFormattedDocument(context.Background(), "project synopsis for a library system", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, domain.SynopsisTitle, res.Title)
	// Every section repeats the full model output.
	assert.Equal(t, 8, strings.Count(res.FormattedText, "<p><h1>Ignored</h1>BODY</p>"))
	assert.Equal(t, 8, strings.Count(res.FormattedText, "<h2>"))
	assert.True(t, strings.HasPrefix(res.FormattedText, synopsisWrapperOpen))
}

func TestGetFormattedDocument_ClientFailure(t *testing.T) {
	cause := errors.New("connection reset")
	client := &fakeAIClient{err: cause}
	svc := NewGenerationService(client, 500)

	res, err := svc.GetFormattedDocument(context.Background(), "anything", 1)

	assert.Nil(t, res)
	assert.Equal(t, 1, client.calls)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationFailed))
	assert.True(t, errors.Is(err, cause))
}

func TestGetFormattedDocument_UnexpectedResponse(t *testing.T) {
	client := &fakeAIClient{err: apperrors.ErrUnexpectedResponse}
	svc := NewGenerationService(client, 500)

	_, err := svc.GetFormattedDocument(context.Background(), "anything", 1)

	assert.True(t, errors.Is(err, apperrors.ErrGenerationFailed))
	assert.True(t, errors.Is(err, apperrors.ErrUnexpectedResponse))
}

func TestNewGenerationService_DefaultsWordsPerPage(t *testing.T) {
	client := &fakeAIClient{reply: "<p>x</p>"}
	svc := NewGenerationService(client, 0)

	_, err := svc.GetFormattedDocument(context.Background(), "x", 4)

	require.NoError(t, err)
	assert.Contains(t, client.instructions[0], "approximately 2000 words long to fill 4 A4 pages")
}
