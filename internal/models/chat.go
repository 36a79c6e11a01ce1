package models

import "time"

// Chat represents a one-to-one conversation between two users.
// Participants are stored in canonical order: User1ID is always the
// lexicographically smaller ID, so a pair has exactly one chat row no
// matter who initiated it.
type Chat struct {
	ID        string    `json:"id" db:"id"`
	User1ID   string    `json:"user1Id" db:"user1_id"`
	User2ID   string    `json:"user2Id" db:"user2_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CanonicalPair orders two user IDs the way chat rows store them.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether the user is one of the chat's two members.
func (c *Chat) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the chat member that is not the given user.
func (c *Chat) OtherParticipant(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// ChatWithUsers includes both participant summaries
type ChatWithUsers struct {
	ID        string      `json:"id"`
	User1     UserSummary `json:"user1"`
	User2     UserSummary `json:"user2"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ChatListItem is one entry of the chat list, ordered by recency
type ChatListItem struct {
	ID          string      `json:"id"`
	OtherUser   UserSummary `json:"otherUser"`
	LastMessage *Message    `json:"lastMessage"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
