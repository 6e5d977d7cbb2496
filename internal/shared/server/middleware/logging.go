package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/shared/telemetry"
)

// GenerationTypeKey is set by the generate handler so request logs carry the variant.
const GenerationTypeKey = "generationType"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if genType := c.GetString(GenerationTypeKey); genType != "" {
			fields["generation_type"] = genType
		}
		telemetry.Info("request.complete", fields)
	}
}
