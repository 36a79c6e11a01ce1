package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kirim/server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors surfaced to REST handlers (as status codes) and to the
// relay (as non-fatal error events).
var (
	ErrChatNotFound   = errors.New("chat not found")
	ErrNotParticipant = errors.New("sender is not a chat participant")
	ErrInvalidMessage = errors.New("invalid message payload")
	ErrSameUser       = errors.New("chat requires two distinct users")
)

// Store owns the chat and message SQL. User, contact and verification
// queries live with their handlers; the relay depends on this package
// through a narrow interface so it stays unit-testable.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given connection pool
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// GetOrCreateChat returns the single chat row for a pair of users,
// creating it on first contact. Participants are stored in canonical
// order so the unique(user1_id, user2_id) constraint deduplicates the
// pair regardless of who initiates.
func (s *Store) GetOrCreateChat(ctx context.Context, userA, userB string) (*models.ChatWithUsers, error) {
	if userA == userB {
		return nil, ErrSameUser
	}

	user1ID, user2ID := models.CanonicalPair(userA, userB)

	// The no-op DO UPDATE makes the insert return the existing row on
	// conflict, keeping get-or-create a single round trip.
	var chat models.Chat
	err := s.pool.QueryRow(ctx, `
		INSERT INTO chats (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
		RETURNING id, user1_id, user2_id, created_at, updated_at
	`, user1ID, user2ID).Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt, &chat.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("get or create chat: %w", err)
	}

	user1, err := s.userSummary(ctx, chat.User1ID)
	if err != nil {
		return nil, err
	}
	user2, err := s.userSummary(ctx, chat.User2ID)
	if err != nil {
		return nil, err
	}

	return &models.ChatWithUsers{
		ID:        chat.ID,
		User1:     *user1,
		User2:     *user2,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}, nil
}

// ChatByID looks up a chat row
func (s *Store) ChatByID(ctx context.Context, chatID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.pool.QueryRow(ctx, `
		SELECT id, user1_id, user2_id, created_at, updated_at
		FROM chats WHERE id = $1
	`, chatID).Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt, &chat.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("chat lookup: %w", err)
	}

	return &chat, nil
}

// UserChats returns the user's chats newest-activity-first, each with
// the other participant and the latest message.
func (s *Store) UserChats(ctx context.Context, userID string) ([]models.ChatListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			c.id, c.updated_at,
			u.id, u.email, u.phone,
			m.id, m.chat_id, m.sender_id, m.type, m.content,
			m.file_path, m.file_name, m.file_size, m.mime_type, m.created_at
		FROM chats c
		INNER JOIN users u
			ON u.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		LEFT JOIN LATERAL (
			SELECT id, chat_id, sender_id, type, content,
				file_path, file_name, file_size, mime_type, created_at
			FROM messages
			WHERE chat_id = c.id
			ORDER BY created_at DESC
			LIMIT 1
		) m ON TRUE
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY c.updated_at DESC
	`, userID)

	if err != nil {
		return nil, fmt.Errorf("user chats: %w", err)
	}
	defer rows.Close()

	chats := []models.ChatListItem{}

	for rows.Next() {
		var item models.ChatListItem
		var msgID, msgChatID, msgSenderID, msgType *string
		var msgCreatedAt *time.Time
		var msg models.Message

		err := rows.Scan(
			&item.ID, &item.UpdatedAt,
			&item.OtherUser.ID, &item.OtherUser.Email, &item.OtherUser.Phone,
			&msgID, &msgChatID, &msgSenderID, &msgType, &msg.Content,
			&msg.FilePath, &msg.FileName, &msg.FileSize, &msg.MimeType, &msgCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("user chats scan: %w", err)
		}

		if msgID != nil {
			msg.ID = *msgID
			msg.ChatID = *msgChatID
			msg.SenderID = *msgSenderID
			msg.Type = *msgType
			msg.CreatedAt = *msgCreatedAt
			item.LastMessage = &msg
		}

		chats = append(chats, item)
	}

	return chats, rows.Err()
}

func (s *Store) userSummary(ctx context.Context, userID string) (*models.UserSummary, error) {
	var u models.UserSummary
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, phone FROM users WHERE id = $1
	`, userID).Scan(&u.ID, &u.Email, &u.Phone)
	if err != nil {
		return nil, fmt.Errorf("user summary: %w", err)
	}
	return &u, nil
}
