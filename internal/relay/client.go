package relay

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client represents one authenticated WebSocket connection
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client for an already-authenticated connection
func NewClient(userID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan []byte, 256),
	}
}

// sendEvent queues an event for the write pump. Returns false if the
// client is already closed or its buffer is full (slow consumer).
func (c *Client) sendEvent(event WSMessage) bool {
	data, ok := marshalEvent(event)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- data:
		return true
	default:
		log.Printf("Send buffer full for client %s, dropping %s event", c.UserID, event.Type)
		return false
	}
}

// closeSend shuts the send channel exactly once. Safe to call from the
// hub on overwrite and again on unregister.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// ReadPump handles incoming events from the client
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var incoming IncomingMessage
		if err := json.Unmarshal(message, &incoming); err != nil {
			log.Printf("Failed to parse message from %s: %v", c.UserID, err)
			continue
		}

		c.handleIncomingMessage(incoming)
	}
}

// WritePump handles outgoing events to the client
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Write error: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleIncomingMessage dispatches events by type. Malformed payloads
// for send_message get an error event back; room events are best-effort
// and fail silently, matching their no-response contract.
func (c *Client) handleIncomingMessage(msg IncomingMessage) {
	switch msg.Type {
	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendEvent(errorEvent(err))
			return
		}
		c.Hub.handleSendMessage(c, payload)

	case EventJoinChat:
		var payload ChatRefPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return
		}
		c.Hub.Join(payload.ChatID, c)

	case EventLeaveChat:
		var payload ChatRefPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return
		}
		c.Hub.Leave(payload.ChatID, c)

	default:
		log.Printf("Unknown message type from %s: %s", c.UserID, msg.Type)
	}
}
