package middleware

import (
	"time"

	"multiverse_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger replaces gin's default access log with the service logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if status >= 500 {
			logger.Error("request", args...)
			return
		}
		logger.Info("request", args...)
	}
}
