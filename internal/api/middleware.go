package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"homework-notifier/internal/logging"
)

func RequestLoggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("Request served")
	}
}
