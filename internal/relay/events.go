package relay

import (
	"encoding/json"
	"time"
)

// EventType represents different WebSocket event types
type EventType string

const (
	// Client → server
	EventSendMessage EventType = "send_message"
	EventJoinChat    EventType = "join_chat"
	EventLeaveChat   EventType = "leave_chat"

	// Server → client
	EventNewMessage EventType = "new_message"
	EventError      EventType = "error"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// IncomingMessage represents messages received from clients. The
// payload is decoded per event type.
type IncomingMessage struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SendMessagePayload is the client payload for send_message
type SendMessagePayload struct {
	ChatID   string  `json:"chatId"`
	Type     string  `json:"type"`
	Content  *string `json:"content,omitempty"`
	FilePath *string `json:"filePath,omitempty"`
	FileName *string `json:"fileName,omitempty"`
	FileSize *int64  `json:"fileSize,omitempty"`
	MimeType *string `json:"mimeType,omitempty"`
}

// ChatRefPayload is the payload for join_chat and leave_chat
type ChatRefPayload struct {
	ChatID string `json:"chatId"`
}

// ErrorPayload represents error event payload
type ErrorPayload struct {
	Message string `json:"message"`
}
