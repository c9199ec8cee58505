package middleware

import (
	"time"

	"molecule-ledger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs one line per request: method, path, status, and
// latency. Request bodies are never logged; they carry plain-text secrets
// on the auth routes.
func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log := l
		if log == nil {
			log = logger.GetGlobalLogger()
		}
		if log != nil {
			log.Infof("%s %s %d %s", method, path, c.Writer.Status(), time.Since(start).String())
		}
	}
}
