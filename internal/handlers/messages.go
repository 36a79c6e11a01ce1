package handlers

import (
	"context"
	"errors"
	"strconv"

	"kirim/server/internal/store"

	"github.com/gofiber/fiber/v2"
)

// SendMessageRequest represents send message request body
type SendMessageRequest struct {
	ChatID   string  `json:"chatId"`
	Type     string  `json:"type"` // text, voice, file
	Content  *string `json:"content,omitempty"`
	FilePath *string `json:"filePath,omitempty"`
	FileName *string `json:"fileName,omitempty"`
	FileSize *int64  `json:"fileSize,omitempty"`
	MimeType *string `json:"mimeType,omitempty"`
}

// SendMessage persists a message over REST. Validation and participant
// checks are the same path the relay uses.
func SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	msg, err := Store.CreateMessage(context.Background(), store.CreateMessageParams{
		ChatID:   req.ChatID,
		SenderID: userID,
		Type:     req.Type,
		Content:  req.Content,
		FilePath: req.FilePath,
		FileName: req.FileName,
		FileSize: req.FileSize,
		MimeType: req.MimeType,
	})

	switch {
	case errors.Is(err, store.ErrInvalidMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, store.ErrChatNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Chat not found",
		})
	case errors.Is(err, store.ErrNotParticipant):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "You are not a participant of this chat",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    msg,
	})
}

// GetMessages returns paginated message history for a chat
func GetMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	chatID := c.Params("chatId")

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	result, err := Store.Messages(context.Background(), chatID, userID, page, limit)

	switch {
	case errors.Is(err, store.ErrChatNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Chat not found",
		})
	case errors.Is(err, store.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "You are not a participant of this chat",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}
