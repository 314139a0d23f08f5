package models

import (
	"time"

	"github.com/google/uuid"
)

// Kinds of notification sent to the chat.
const (
	KindStatus = "status"
	KindError  = "error"
)

// Notification records one attempt to deliver a message to the chat.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Homework  string    `json:"homework,omitempty"`
	Status    string    `json:"status,omitempty"`
	ChatID    string    `json:"chat_id"`
	Text      string    `json:"text"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
}

// NewNotification creates a record with a fresh ID and timestamp.
func NewNotification(kind, chatID, text string) Notification {
	return Notification{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Kind:      kind,
		ChatID:    chatID,
		Text:      text,
	}
}

// Key returns the partition key used when publishing the record.
func (n Notification) Key() string {
	if n.Kind == KindError || n.Homework == "" {
		return KindError
	}
	return n.Homework
}
