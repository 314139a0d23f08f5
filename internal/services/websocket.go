package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"homework-notifier/internal/logging"
	"homework-notifier/internal/models"
)

// maxConnections caps concurrent feed subscribers.
const maxConnections = 10

// WebSocketManager broadcasts notification records to connected clients.
type WebSocketManager struct {
	connections map[*websocket.Conn]bool
	mutex       sync.Mutex
	logger      *logging.Logger
}

func NewWebSocketManager(logger *logging.Logger) *WebSocketManager {
	return &WebSocketManager{
		connections: make(map[*websocket.Conn]bool),
		logger:      logger,
	}
}

// AddConnection registers conn. It reports false when the limit is reached.
func (m *WebSocketManager) AddConnection(conn *websocket.Conn) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.connections) >= maxConnections {
		m.logger.Warnf("Max WebSocket connections reached (%d)", maxConnections)
		return false
	}
	m.connections[conn] = true
	m.logger.Infof("Added WebSocket connection (total: %d)", len(m.connections))
	return true
}

// RemoveConnection unregisters conn.
func (m *WebSocketManager) RemoveConnection(conn *websocket.Conn) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, exists := m.connections[conn]; exists {
		delete(m.connections, conn)
		m.logger.Infof("Removed WebSocket connection (remaining: %d)", len(m.connections))
	}
}

// Count returns the number of connected clients.
func (m *WebSocketManager) Count() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.connections)
}

// Publish sends n as JSON to every client, dropping the ones that fail.
func (m *WebSocketManager) Publish(_ context.Context, n models.Notification) error {
	message, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for conn := range m.connections {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			m.logger.Errorf("Failed to send WebSocket message: %v", err)
			delete(m.connections, conn)
			_ = conn.Close()
		}
	}
	return nil
}
