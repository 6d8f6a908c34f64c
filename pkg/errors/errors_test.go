package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_MatchesSentinelByCode(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("generate: %w", Wrap(cause, CodeGenerationFailed, "document generation failed"))

	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.False(t, errors.Is(err, ErrInvalidParam))
	assert.True(t, errors.Is(err, cause))
}

func TestCodeToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidParam.HTTPStatus)
	assert.Equal(t, http.StatusUnsupportedMediaType, ErrUnsupportedMedia.HTTPStatus)
	assert.Equal(t, http.StatusMethodNotAllowed, New(CodeMethodNotAllowed, "x").HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, ErrGenerationFailed.HTTPStatus)
}

func TestAsAppError(t *testing.T) {
	plain := errors.New("plain")
	appErr := AsAppError(plain)
	assert.Equal(t, CodeUnknown, appErr.Code)
	assert.Equal(t, plain, appErr.Unwrap())

	wrapped := fmt.Errorf("ctx: %w", ErrUnsupportedMedia)
	assert.Equal(t, CodeUnsupportedMedia, AsAppError(wrapped).Code)
}

func TestWithDetail_DoesNotMutateSentinel(t *testing.T) {
	e := ErrInvalidParam.WithDetail("pages must be positive")
	assert.Equal(t, "pages must be positive", e.Detail)
	assert.Empty(t, ErrInvalidParam.Detail)
}
