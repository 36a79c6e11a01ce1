package models_test

import (
	"testing"

	"kirim/server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair_OrderIndependent(t *testing.T) {
	a1, b1 := models.CanonicalPair("user-a", "user-b")
	a2, b2 := models.CanonicalPair("user-b", "user-a")

	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, "user-a", a1, "slot 1 holds the lexicographically smaller ID")
	assert.Equal(t, "user-b", b1)
}

func TestCanonicalPair_EqualIDs(t *testing.T) {
	a, b := models.CanonicalPair("same", "same")
	assert.Equal(t, "same", a)
	assert.Equal(t, "same", b)
}

func TestChatHasParticipant(t *testing.T) {
	chat := &models.Chat{User1ID: "alice", User2ID: "bob"}

	assert.True(t, chat.HasParticipant("alice"))
	assert.True(t, chat.HasParticipant("bob"))
	assert.False(t, chat.HasParticipant("mallory"))
	assert.False(t, chat.HasParticipant(""))
}

func TestChatOtherParticipant(t *testing.T) {
	chat := &models.Chat{User1ID: "alice", User2ID: "bob"}

	assert.Equal(t, "bob", chat.OtherParticipant("alice"))
	assert.Equal(t, "alice", chat.OtherParticipant("bob"))
}
