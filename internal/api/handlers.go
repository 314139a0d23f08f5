package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"homework-notifier/internal/logging"
	"homework-notifier/internal/models"
	"homework-notifier/internal/services"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// StatusProvider exposes the poll loop state.
type StatusProvider interface {
	Snapshot() services.Snapshot
}

// NotificationStore reads the notification journal.
type NotificationStore interface {
	GetRecentNotifications(ctx context.Context, limit, offset int) ([]models.Notification, error)
}

type Handler struct {
	status   StatusProvider
	ws       *services.WebSocketManager
	store    NotificationStore
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

// NewHandler builds the handlers. store may be nil when the journal is disabled.
func NewHandler(status StatusProvider, ws *services.WebSocketManager, store NotificationStore, logger *logging.Logger) *Handler {
	return &Handler{
		status: status,
		ws:     ws,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"poll":        h.status.Snapshot(),
		"subscribers": h.ws.Count(),
		"journal":     h.store != nil,
	})
}

func (h *Handler) GetNotifications(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notification journal is disabled"})
		return
	}

	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
		return
	}

	notifications, err := h.store.GetRecentNotifications(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Errorf("Failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	h.logger.Debugf("Retrieved %d notifications", len(notifications))
	c.JSON(http.StatusOK, notifications)
}

// StreamNotifications upgrades to a WebSocket that receives every new
// notification record until the client disconnects.
func (h *Handler) StreamNotifications(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	if !h.ws.AddConnection(conn) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many subscribers"))
		_ = conn.Close()
		return
	}
	defer func() {
		h.ws.RemoveConnection(conn)
		_ = conn.Close()
	}()

	// Drain client frames so close and ping are handled.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
