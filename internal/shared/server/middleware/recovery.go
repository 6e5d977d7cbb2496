package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/shared/server/respond"
	"hiremind-backend/internal/shared/telemetry"
)

// Recovery recovers from panics and returns the standard 500 envelope. The
// panic value is only echoed to the caller when exposeDetail is set.
func Recovery(exposeDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				message := "Something went wrong"
				if exposeDetail {
					message = fmt.Sprint(rec)
				}
				respond.Error(c, http.StatusInternalServerError, "Internal server error", message)
			}
		}()
		c.Next()
	}
}
