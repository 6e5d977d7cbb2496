package respond

import (
	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/shared/telemetry"
)

// ErrorResponse is the uniform error envelope returned by every route.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error logs and sends an error envelope, aborting the handler chain.
func Error(c *gin.Context, status int, errMsg, message string) {
	fields := map[string]any{
		"status":     status,
		"error":      errMsg,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
		"client_ip":  c.ClientIP(),
	}
	if message != "" {
		fields["message"] = message
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   errMsg,
		Message: message,
	})
}
