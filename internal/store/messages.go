package store

import (
	"context"
	"fmt"
	"log"

	"kirim/server/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// CreateMessageParams carries everything needed to persist one message.
// Content is required for text messages; FilePath for voice and file
// messages.
type CreateMessageParams struct {
	ChatID   string
	SenderID string
	Type     string
	Content  *string
	FilePath *string
	FileName *string
	FileSize *int64
	MimeType *string
}

// Validate checks the type-dependent required fields. Shared by the
// REST handler and the relay so both reject the same payloads.
func (p *CreateMessageParams) Validate() error {
	if p.ChatID == "" {
		return fmt.Errorf("%w: chatId is required", ErrInvalidMessage)
	}

	switch p.Type {
	case models.MessageTypeText:
		if p.Content == nil || *p.Content == "" {
			return fmt.Errorf("%w: content is required for text messages", ErrInvalidMessage)
		}
	case models.MessageTypeVoice, models.MessageTypeFile:
		if p.FilePath == nil || *p.FilePath == "" {
			return fmt.Errorf("%w: filePath is required for %s messages", ErrInvalidMessage, p.Type)
		}
	default:
		return fmt.Errorf("%w: type must be text, voice, or file", ErrInvalidMessage)
	}

	return nil
}

// CreateMessage persists a message after verifying the sender is a chat
// participant, then bumps the chat's updated_at so chat lists sort by
// recency. The bump is best-effort: a failure after the message insert
// leaves ordering stale but never loses the message.
func (s *Store) CreateMessage(ctx context.Context, p CreateMessageParams) (*models.MessageWithSender, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	chat, err := s.ChatByID(ctx, p.ChatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(p.SenderID) {
		return nil, ErrNotParticipant
	}

	var msg models.MessageWithSender
	err = s.pool.QueryRow(ctx, `
		INSERT INTO messages (chat_id, sender_id, type, content, file_path, file_name, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, chat_id, sender_id, type, content, file_path, file_name, file_size, mime_type, created_at
	`, p.ChatID, p.SenderID, p.Type, p.Content, p.FilePath, p.FileName, p.FileSize, p.MimeType).
		Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Type, &msg.Content,
			&msg.FilePath, &msg.FileName, &msg.FileSize, &msg.MimeType, &msg.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if _, err := s.pool.Exec(ctx, `
		UPDATE chats SET updated_at = NOW() WHERE id = $1
	`, p.ChatID); err != nil {
		log.Printf("Failed to bump chat %s updated_at: %v", p.ChatID, err)
	}

	sender, err := s.userSummary(ctx, p.SenderID)
	if err != nil {
		return nil, err
	}
	msg.Sender = *sender

	return &msg, nil
}

// Messages returns one page of chat history for a participant. The page
// is fetched newest-first so page 1 is always the most recent slice,
// then reversed so messages read oldest-first within the page.
func (s *Store) Messages(ctx context.Context, chatID, userID string, page, limit int) (*models.MessagePage, error) {
	chat, err := s.ChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	page, limit = NormalizePageLimit(page, limit)
	offset := (page - 1) * limit

	var total int
	err = s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE chat_id = $1
	`, chatID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT
			m.id, m.chat_id, m.sender_id, m.type, m.content,
			m.file_path, m.file_name, m.file_size, m.mime_type, m.created_at,
			u.id, u.email, u.phone
		FROM messages m
		INNER JOIN users u ON m.sender_id = u.id
		WHERE m.chat_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3
	`, chatID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []models.MessageWithSender{}

	for rows.Next() {
		var msg models.MessageWithSender
		err := rows.Scan(
			&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Type, &msg.Content,
			&msg.FilePath, &msg.FileName, &msg.FileSize, &msg.MimeType, &msg.CreatedAt,
			&msg.Sender.ID, &msg.Sender.Email, &msg.Sender.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("message scan: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ReverseMessages(messages)

	return &models.MessagePage{
		Messages:   messages,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}, nil
}

// NormalizePageLimit applies defaults and clamps the page size
func NormalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return page, limit
}

// TotalPages is ceil(total/limit)
func TotalPages(total, limit int) int {
	return (total + limit - 1) / limit
}

// ReverseMessages flips a newest-first page to oldest-first in place
func ReverseMessages(messages []models.MessageWithSender) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
