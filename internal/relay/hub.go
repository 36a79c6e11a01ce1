package relay

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"kirim/server/internal/models"
	"kirim/server/internal/store"
)

// ChatStore is the slice of the persistence layer the relay needs:
// resolving a chat to find the recipient, and the durable message write.
type ChatStore interface {
	ChatByID(ctx context.Context, chatID string) (*models.Chat, error)
	CreateMessage(ctx context.Context, p store.CreateMessageParams) (*models.MessageWithSender, error)
}

// Hub maintains the set of live clients and routes messages to them.
// The clients map is the connection registry: one entry per user,
// last-connect-wins. Rooms are advisory join_chat/leave_chat grouping
// and never gate delivery, which always targets the chat's two fixed
// participants.
type Hub struct {
	store ChatStore

	// Registered clients mapped by user ID
	clients map[string]*Client

	// Clients grouped by joined chat
	rooms map[string]map[*Client]struct{}

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new relay hub
func NewHub(s ChatStore) *Hub {
	return &Hub{
		store:      s,
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

// registerClient records the user → client mapping. A newer connection
// for the same user replaces the previous one; the replaced client's
// send channel is closed, which shuts down its write pump.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[client.UserID]; ok && existing != client {
		existing.closeSend()
	}

	h.clients[client.UserID] = client

	log.Printf("Client connected: %s", client.UserID)
}

// unregisterClient removes the mapping and all room memberships, but
// only if the stored client is the one disconnecting. A stale
// disconnect racing a newer connect must not evict the newer entry.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[client.UserID]; ok && current == client {
		delete(h.clients, client.UserID)
		log.Printf("Client disconnected: %s", client.UserID)
	}

	client.closeSend()

	h.removeFromRoomsLocked(client)
}

// Join adds a client to a chat room. The chat ID is not validated
// against the store; membership is bookkeeping for presence-style
// broadcasts only.
func (h *Hub) Join(chatID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[chatID] == nil {
		h.rooms[chatID] = make(map[*Client]struct{})
	}
	h.rooms[chatID][client] = struct{}{}
}

// Leave removes a client from a chat room
func (h *Hub) Leave(chatID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members := h.rooms[chatID]; members != nil {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

// MembersOf returns the clients currently joined to a chat
func (h *Hub) MembersOf(chatID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]*Client, 0, len(h.rooms[chatID]))
	for client := range h.rooms[chatID] {
		members = append(members, client)
	}
	return members
}

func (h *Hub) removeFromRoomsLocked(client *Client) {
	for chatID, members := range h.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

// SendToUser delivers an event to a user's live connection, if any.
// Returns false when the user is offline; callers treat that as "no
// live delivery", not an error — history catch-up covers it.
func (h *Hub) SendToUser(userID string, event WSMessage) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return false
	}

	return client.sendEvent(event)
}

// handleSendMessage runs the send protocol for one inbound message:
// validate, persist (which bumps chat recency), echo the stored
// representation to the sender, then deliver to the other participant
// if connected. Failures go back to the sender as a non-fatal error
// event and never drop the connection.
func (h *Hub) handleSendMessage(client *Client, p SendMessagePayload) {
	ctx := context.Background()

	msg, err := h.store.CreateMessage(ctx, store.CreateMessageParams{
		ChatID:   p.ChatID,
		SenderID: client.UserID,
		Type:     p.Type,
		Content:  p.Content,
		FilePath: p.FilePath,
		FileName: p.FileName,
		FileSize: p.FileSize,
		MimeType: p.MimeType,
	})
	if err != nil {
		client.sendEvent(errorEvent(err))
		return
	}

	event := WSMessage{
		Type:      EventNewMessage,
		Payload:   msg,
		Timestamp: time.Now(),
	}

	// Acknowledgement-as-echo to the sender. The sender may already be
	// gone; delivery is then simply dropped.
	client.sendEvent(event)

	chat, err := h.store.ChatByID(ctx, p.ChatID)
	if err != nil {
		log.Printf("Failed to resolve chat %s for delivery: %v", p.ChatID, err)
		return
	}

	h.SendToUser(chat.OtherParticipant(client.UserID), event)
}

func errorEvent(err error) WSMessage {
	return WSMessage{
		Type:      EventError,
		Payload:   ErrorPayload{Message: err.Error()},
		Timestamp: time.Now(),
	}
}

// IsUserOnline checks if a user is currently connected
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.clients[userID]
	return ok
}

// OnlineUsers returns a list of currently connected user IDs
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userIDs := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		userIDs = append(userIDs, userID)
	}
	return userIDs
}

// OnlineCount returns the number of currently connected clients
func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

func marshalEvent(event WSMessage) ([]byte, bool) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return nil, false
	}
	return data, true
}
