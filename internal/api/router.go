package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"homework-notifier/internal/logging"
)

func NewRouter(logger *logging.Logger, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v0")
	{
		api.GET("/status", h.GetStatus)
		api.GET("/notifications", h.GetNotifications)
		api.GET("/ws", h.StreamNotifications)
	}
	return r
}
