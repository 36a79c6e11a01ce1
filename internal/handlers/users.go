package handlers

import (
	"context"
	"errors"

	"kirim/server/internal/database"
	"kirim/server/internal/models"
	"kirim/server/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// SearchByPhone finds a user by exact phone match. The query is
// normalized to E.164 first so any input format matches the stored form.
func SearchByPhone(c *fiber.Ctx) error {
	phone := c.Query("phone", "")
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Phone query parameter is required",
		})
	}

	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid phone number format",
		})
	}

	var user models.User
	err = database.Pool.QueryRow(context.Background(), `
		SELECT id, email, phone, phone_verified, created_at, updated_at
		FROM users WHERE phone = $1
	`, normalized).Scan(&user.ID, &user.Email, &user.Phone, &user.PhoneVerified,
		&user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user.ToResponse(),
	})
}

// GetUser returns a user by ID
func GetUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	err := database.Pool.QueryRow(context.Background(), `
		SELECT id, email, phone, phone_verified, created_at, updated_at
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.Email, &user.Phone, &user.PhoneVerified,
		&user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user.ToResponse(),
	})
}
