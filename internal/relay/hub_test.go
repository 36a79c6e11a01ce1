package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"kirim/server/internal/models"
	"kirim/server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatStore implements ChatStore in memory. CreateMessage applies the
// same validation and participant rules as the real store so the relay
// sees the same error classes.
type fakeChatStore struct {
	chats   map[string]*models.Chat
	created []store.CreateMessageParams
	nextID  int
}

func newFakeChatStore(chats ...*models.Chat) *fakeChatStore {
	f := &fakeChatStore{chats: make(map[string]*models.Chat)}
	for _, c := range chats {
		f.chats[c.ID] = c
	}
	return f
}

func (f *fakeChatStore) ChatByID(_ context.Context, chatID string) (*models.Chat, error) {
	chat, ok := f.chats[chatID]
	if !ok {
		return nil, store.ErrChatNotFound
	}
	return chat, nil
}

func (f *fakeChatStore) CreateMessage(_ context.Context, p store.CreateMessageParams) (*models.MessageWithSender, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	chat, err := f.ChatByID(context.Background(), p.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(p.SenderID) {
		return nil, store.ErrNotParticipant
	}

	f.created = append(f.created, p)
	f.nextID++

	return &models.MessageWithSender{
		ID:       fmt.Sprintf("msg-%d", f.nextID),
		ChatID:   p.ChatID,
		SenderID: p.SenderID,
		Sender:   models.UserSummary{ID: p.SenderID},
		Type:     p.Type,
		Content:  p.Content,
		FilePath: p.FilePath,
	}, nil
}

// receivedEvent decodes one queued frame from a client's send buffer.
type receivedEvent struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func recvEvent(t *testing.T, c *Client) receivedEvent {
	t.Helper()

	select {
	case data := <-c.Send:
		var ev receivedEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatal("expected a queued event, send buffer is empty")
		return receivedEvent{}
	}
}

func requireNoEvent(t *testing.T, c *Client) {
	t.Helper()

	select {
	case data := <-c.Send:
		t.Fatalf("expected no queued event, got: %s", data)
	default:
	}
}

func str(s string) *string { return &s }

func testChat(id, user1, user2 string) *models.Chat {
	u1, u2 := models.CanonicalPair(user1, user2)
	return &models.Chat{ID: id, User1ID: u1, User2ID: u2}
}

func TestRegisterClient_LastConnectWins(t *testing.T) {
	hub := NewHub(newFakeChatStore())

	first := NewClient("alice", nil, hub)
	second := NewClient("alice", nil, hub)

	hub.registerClient(first)
	hub.registerClient(second)

	assert.True(t, hub.IsUserOnline("alice"))
	assert.Equal(t, 1, hub.OnlineCount(), "one user must map to one connection")

	// The replaced connection is shut down and can no longer receive.
	assert.False(t, first.sendEvent(errorEvent(store.ErrChatNotFound)))
	assert.True(t, second.sendEvent(errorEvent(store.ErrChatNotFound)))
}

func TestUnregisterClient_StaleDisconnectKeepsNewerConnection(t *testing.T) {
	hub := NewHub(newFakeChatStore())

	first := NewClient("alice", nil, hub)
	second := NewClient("alice", nil, hub)

	hub.registerClient(first)
	hub.registerClient(second)

	// The old connection's teardown arrives after the reconnect. It must
	// not evict the newer registration.
	hub.unregisterClient(first)

	assert.True(t, hub.IsUserOnline("alice"))
	assert.True(t, hub.SendToUser("alice", errorEvent(store.ErrChatNotFound)))
	recvEvent(t, second)

	hub.unregisterClient(second)
	assert.False(t, hub.IsUserOnline("alice"))
	assert.Equal(t, 0, hub.OnlineCount())
}

func TestSendToUser_OfflineReturnsFalse(t *testing.T) {
	hub := NewHub(newFakeChatStore())

	assert.False(t, hub.SendToUser("ghost", errorEvent(store.ErrChatNotFound)))
}

func TestRooms_JoinLeaveAndDisconnectCleanup(t *testing.T) {
	hub := NewHub(newFakeChatStore())

	alice := NewClient("alice", nil, hub)
	bob := NewClient("bob", nil, hub)
	hub.registerClient(alice)
	hub.registerClient(bob)

	// Unknown chat IDs are accepted; membership is advisory.
	hub.Join("chat-1", alice)
	hub.Join("chat-1", bob)
	assert.Len(t, hub.MembersOf("chat-1"), 2)

	hub.Leave("chat-1", alice)
	assert.Len(t, hub.MembersOf("chat-1"), 1)

	// Leaving a room twice, or a room never joined, is a no-op.
	hub.Leave("chat-1", alice)
	hub.Leave("no-such-chat", alice)
	assert.Len(t, hub.MembersOf("chat-1"), 1)

	// Disconnect implicitly leaves every room.
	hub.unregisterClient(bob)
	assert.Empty(t, hub.MembersOf("chat-1"))
}

func TestHandleSendMessage_EchoesToSenderAndDeliversToRecipient(t *testing.T) {
	chats := newFakeChatStore(testChat("chat-1", "alice", "bob"))
	hub := NewHub(chats)

	alice := NewClient("alice", nil, hub)
	bob := NewClient("bob", nil, hub)
	hub.registerClient(alice)
	hub.registerClient(bob)

	hub.handleSendMessage(alice, SendMessagePayload{
		ChatID:  "chat-1",
		Type:    models.MessageTypeText,
		Content: str("hello"),
	})

	require.Len(t, chats.created, 1)
	assert.Equal(t, "alice", chats.created[0].SenderID)

	echo := recvEvent(t, alice)
	assert.Equal(t, EventNewMessage, echo.Type)

	delivered := recvEvent(t, bob)
	assert.Equal(t, EventNewMessage, delivered.Type)
	assert.JSONEq(t, string(echo.Payload), string(delivered.Payload),
		"sender and recipient must see the same stored message")

	var msg models.MessageWithSender
	require.NoError(t, json.Unmarshal(delivered.Payload, &msg))
	assert.Equal(t, "chat-1", msg.ChatID)
	require.NotNil(t, msg.Content)
	assert.Equal(t, "hello", *msg.Content)
}

func TestHandleSendMessage_RecipientOfflineStillPersistsAndEchoes(t *testing.T) {
	chats := newFakeChatStore(testChat("chat-1", "alice", "bob"))
	hub := NewHub(chats)

	alice := NewClient("alice", nil, hub)
	hub.registerClient(alice)

	hub.handleSendMessage(alice, SendMessagePayload{
		ChatID:  "chat-1",
		Type:    models.MessageTypeText,
		Content: str("anyone home?"),
	})

	require.Len(t, chats.created, 1)
	assert.Equal(t, EventNewMessage, recvEvent(t, alice).Type)
}

func TestHandleSendMessage_ChatNotFound(t *testing.T) {
	chats := newFakeChatStore()
	hub := NewHub(chats)

	alice := NewClient("alice", nil, hub)
	hub.registerClient(alice)

	hub.handleSendMessage(alice, SendMessagePayload{
		ChatID:  "missing",
		Type:    models.MessageTypeText,
		Content: str("hi"),
	})

	assert.Empty(t, chats.created, "nothing may be persisted for an unknown chat")

	ev := recvEvent(t, alice)
	assert.Equal(t, EventError, ev.Type)
	requireNoEvent(t, alice)
}

func TestHandleSendMessage_SenderNotParticipant(t *testing.T) {
	chats := newFakeChatStore(testChat("chat-1", "alice", "bob"))
	hub := NewHub(chats)

	mallory := NewClient("mallory", nil, hub)
	bob := NewClient("bob", nil, hub)
	hub.registerClient(mallory)
	hub.registerClient(bob)

	hub.handleSendMessage(mallory, SendMessagePayload{
		ChatID:  "chat-1",
		Type:    models.MessageTypeText,
		Content: str("intercepted"),
	})

	assert.Empty(t, chats.created)
	assert.Equal(t, EventError, recvEvent(t, mallory).Type)
	requireNoEvent(t, bob)
}

func TestHandleSendMessage_InvalidPayload(t *testing.T) {
	chats := newFakeChatStore(testChat("chat-1", "alice", "bob"))
	hub := NewHub(chats)

	alice := NewClient("alice", nil, hub)
	hub.registerClient(alice)

	// Text message without content.
	hub.handleSendMessage(alice, SendMessagePayload{
		ChatID: "chat-1",
		Type:   models.MessageTypeText,
	})
	assert.Equal(t, EventError, recvEvent(t, alice).Type)

	// Voice message without a file reference.
	hub.handleSendMessage(alice, SendMessagePayload{
		ChatID: "chat-1",
		Type:   models.MessageTypeVoice,
	})
	assert.Equal(t, EventError, recvEvent(t, alice).Type)

	assert.Empty(t, chats.created)
}
