package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"a4-doc-editor/backend/pkg/logger"
)

// Recovery turns a panic outside a handler into a 500 with the panic value
// as details.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				err := fmt.Errorf("%v", p)
				logger.Error(c.Request.Context(), "panic recovered", err,
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal server error",
					"details": err.Error(),
				})
			}
		}()

		c.Next()
	}
}
