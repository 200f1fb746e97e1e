package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"job-board-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Notification event types
const (
	EventApplicantCreated = "applicant_created"
	EventApplicantDeleted = "applicant_deleted"
)

// Event is a message pushed to a connected job owner
type Event struct {
	Type      string            `json:"type"`
	JobPostID string            `json:"jobPostId"`
	Applicant *models.Applicant `json:"applicant,omitempty"`
}

// Notifier delivers events to users
type Notifier interface {
	Notify(userID string, event Event)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, Event) {}

type client struct {
	conn *websocket.Conn
	// gorilla connections support one concurrent writer
	writeMu sync.Mutex
}

// NotificationHub manages WebSocket connections, one per user
type NotificationHub struct {
	mu          sync.RWMutex
	connections map[string]*client
}

// NewNotificationHub creates a new notification hub
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		connections: make(map[string]*client),
	}
}

// Register registers a connection for a user, replacing any older one
func (h *NotificationHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok && existing.conn != conn {
		existing.conn.Close()
	}
	h.connections[userID] = &client{conn: conn}

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes the connection of a user. It is a no-op for a
// connection that was already replaced by a newer one.
func (h *NotificationHub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.connections[userID]
	if !ok || current.conn != conn {
		return
	}
	current.conn.Close()
	delete(h.connections, userID)
	log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
}

// IsOnline checks if a user is connected
func (h *NotificationHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

// SendToUser writes an event to the user's connection
func (h *NotificationHub) SendToUser(userID string, event Event) error {
	h.mu.RLock()
	c, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.writeMu.Lock()
	err = c.conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		h.Unregister(userID, c.conn)
		return fmt.Errorf("failed to send event: %w", err)
	}

	return nil
}

// Notify sends an event and drops it when the user is offline
func (h *NotificationHub) Notify(userID string, event Event) {
	if !h.IsOnline(userID) {
		log.Debug().Str("user_id", userID).Str("type", event.Type).Msg("User offline, event dropped")
		return
	}
	if err := h.SendToUser(userID, event); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("type", event.Type).Msg("Failed to deliver event")
	}
}
