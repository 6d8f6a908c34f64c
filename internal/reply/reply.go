// Package reply lets gin handlers return their response as a value, so that
// each request is answered exactly once.
package reply

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "a4-doc-editor/backend/pkg/errors"
	"a4-doc-editor/backend/pkg/logger"
)

// Reply is a complete HTTP response.
type Reply struct {
	status      int
	body        any
	raw         []byte
	contentType string
	headers     [][2]string
}

// Status returns the HTTP status of r.
func (r Reply) Status() int {
	return r.status
}

// WithHeader returns r with an additional response header.
func (r Reply) WithHeader(key, value string) Reply {
	r.headers = append(append([][2]string(nil), r.headers...), [2]string{key, value})
	return r
}

// JSON replies with body encoded as JSON.
func JSON(status int, body any) Reply {
	return Reply{status: status, body: body}
}

// HTML replies with a text/html document.
func HTML(status int, markup string) Reply {
	return Reply{status: status, raw: []byte(markup), contentType: "text/html; charset=utf-8"}
}

// Error replies with {"error": message}.
func Error(status int, message string) Reply {
	return JSON(status, gin.H{"error": message})
}

// ErrorWithDetails replies with {"error": message, "details": details}.
func ErrorWithDetails(status int, message string, details any) Reply {
	return JSON(status, gin.H{"error": message, "details": details})
}

// FromError maps err to a reply using its AppError status when it has one.
func FromError(err error) Reply {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Detail != "" {
			return ErrorWithDetails(appErr.HTTPStatus, appErr.Message, appErr.Detail)
		}
		return Error(appErr.HTTPStatus, appErr.Message)
	}
	return ErrorWithDetails(http.StatusInternalServerError, "Internal server error", err.Error())
}

func (r Reply) write(c *gin.Context) {
	for _, h := range r.headers {
		c.Header(h[0], h[1])
	}
	switch {
	case r.raw != nil:
		c.Data(r.status, r.contentType, r.raw)
	case r.body != nil:
		c.JSON(r.status, r.body)
	default:
		c.Status(r.status)
	}
}

// Handler produces the response of a request.
type Handler func(c *gin.Context) Reply

// Gin adapts h to gin. A panic inside h is answered with a 500 carrying the
// panic value as details.
func Gin(h Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := run(h, c)
		if err != nil {
			logger.Error(c.Request.Context(), "handler failed", err, "path", c.Request.URL.Path)
			res = ErrorWithDetails(http.StatusInternalServerError, "Internal server error", err.Error())
		}
		res.write(c)
	}
}

func run(h Handler, c *gin.Context) (res Reply, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	return h(c), nil
}
