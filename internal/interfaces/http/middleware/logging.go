// Package middleware holds the gin middleware shared by the API routes.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
)

// Logger is the subset of the logging contract the middleware needs.
type Logger interface {
	Info(msg string, fields ...logging.Field)
	Warn(msg string, fields ...logging.Field)
}

// RequestLogging logs one line per request with method, path, status and
// latency. Server errors log at warn.
func RequestLogging(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("latency", time.Since(start)),
			logging.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= 500 {
			log.Warn("request failed", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
