// Package errors defines the application error type and its HTTP mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	CodeUnknown          ErrorCode = "1000"
	CodeInvalidParam     ErrorCode = "1001"
	CodeMethodNotAllowed ErrorCode = "1002"
	CodeNotFound         ErrorCode = "1004"
	CodeInternalError    ErrorCode = "1007"

	CodeGenerationFailed   ErrorCode = "4001"
	CodeUnexpectedResponse ErrorCode = "4002"
	CodeUnsupportedMedia   ErrorCode = "4003"

	CodeLLMProviderError ErrorCode = "5005"
	CodeConfigError      ErrorCode = "5006"
)

// AppError is an error with a code, a client-facing message and an HTTP status.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, ErrGenerationFailed) matches any wrapped generation failure.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of e carrying detail.
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap creates an AppError around err.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrGenerationFailed   = New(CodeGenerationFailed, "document generation failed")
	ErrUnexpectedResponse = New(CodeUnexpectedResponse, "unexpected response structure")
	ErrUnsupportedMedia   = New(CodeUnsupportedMedia, "unsupported media type")
	ErrLLMProvider        = New(CodeLLMProviderError, "LLM provider error")
)

// AsAppError returns the AppError in err's chain, or wraps err as CodeUnknown.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
