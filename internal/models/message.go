package models

import "time"

// Message types. Text messages carry inline content; voice and file
// messages reference an uploaded file instead.
const (
	MessageTypeText  = "text"
	MessageTypeVoice = "voice"
	MessageTypeFile  = "file"
)

// Message represents a chat message
type Message struct {
	ID        string    `json:"id" db:"id"`
	ChatID    string    `json:"chatId" db:"chat_id"`
	SenderID  string    `json:"senderId" db:"sender_id"`
	Type      string    `json:"type" db:"type"` // 'text', 'voice', 'file'
	Content   *string   `json:"content,omitempty" db:"content"`
	FilePath  *string   `json:"filePath,omitempty" db:"file_path"`
	FileName  *string   `json:"fileName,omitempty" db:"file_name"`
	FileSize  *int64    `json:"fileSize,omitempty" db:"file_size"`
	MimeType  *string   `json:"mimeType,omitempty" db:"mime_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MessageWithSender includes the resolved sender summary
type MessageWithSender struct {
	ID        string      `json:"id"`
	ChatID    string      `json:"chatId"`
	SenderID  string      `json:"senderId"`
	Sender    UserSummary `json:"sender"`
	Type      string      `json:"type"`
	Content   *string     `json:"content,omitempty"`
	FilePath  *string     `json:"filePath,omitempty"`
	FileName  *string     `json:"fileName,omitempty"`
	FileSize  *int64      `json:"fileSize,omitempty"`
	MimeType  *string     `json:"mimeType,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MessagePage is one page of chat history, oldest first within the page
type MessagePage struct {
	Messages   []MessageWithSender `json:"messages"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"totalPages"`
}
