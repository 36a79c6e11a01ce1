package handlers

import (
	"context"
	"errors"

	"kirim/server/internal/database"
	"kirim/server/internal/store"

	"github.com/gofiber/fiber/v2"
)

// CreateChatRequest represents chat creation request body
type CreateChatRequest struct {
	OtherUserID string `json:"otherUserId"`
}

// CreateChat returns the chat with another user, creating it lazily on
// first request. Either participant can initiate; the pair always maps
// to the same row.
func CreateChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req CreateChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.OtherUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Other user ID is required",
		})
	}

	var exists bool
	err := database.Pool.QueryRow(context.Background(),
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", req.OtherUserID).Scan(&exists)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	chat, err := Store.GetOrCreateChat(context.Background(), userID, req.OtherUserID)
	if errors.Is(err, store.ErrSameUser) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Cannot open a chat with yourself",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create chat",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    chat,
	})
}

// GetChats returns the user's chats ordered by latest activity
func GetChats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	chats, err := Store.UserChats(context.Background(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    chats,
	})
}

// GetChat returns a single chat; participants only
func GetChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	chatID := c.Params("chatId")

	chat, err := Store.ChatByID(context.Background(), chatID)
	if errors.Is(err, store.ErrChatNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Chat not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	if !chat.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "You are not a participant of this chat",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    chat,
	})
}
