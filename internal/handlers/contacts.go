package handlers

import (
	"context"
	"errors"

	"kirim/server/internal/database"
	"kirim/server/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// AddContactRequest represents add contact request body
type AddContactRequest struct {
	ContactID string `json:"contactId"`
}

// AddContact adds a directed contact relation. Re-adding an existing
// contact is a no-op that returns the existing row.
func AddContact(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req AddContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.ContactID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Contact ID is required",
		})
	}

	if req.ContactID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "You cannot add yourself as a contact",
		})
	}

	var contactUser models.User
	err := database.Pool.QueryRow(context.Background(), `
		SELECT id, email, phone FROM users WHERE id = $1
	`, req.ContactID).Scan(&contactUser.ID, &contactUser.Email, &contactUser.Phone)

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

	// The no-op DO UPDATE returns the existing row on conflict, making
	// re-adds idempotent in a single statement.
	var contact models.Contact
	err = database.Pool.QueryRow(context.Background(), `
		INSERT INTO contacts (user_id, contact_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, contact_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, contact_id, created_at
	`, userID, req.ContactID).Scan(&contact.ID, &contact.UserID, &contact.ContactID, &contact.CreatedAt)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to add contact",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": models.ContactWithUser{
			ID:        contact.ID,
			UserID:    contact.UserID,
			Contact:   contactUser.ToSummary(),
			CreatedAt: contact.CreatedAt,
		},
	})
}

// GetContacts returns all contacts for current user, newest first
func GetContacts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	rows, err := database.Pool.Query(context.Background(), `
		SELECT
			c.id, c.user_id, c.created_at,
			u.id, u.email, u.phone
		FROM contacts c
		INNER JOIN users u ON c.contact_id = u.id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	contacts := []models.ContactWithUser{}

	for rows.Next() {
		var contact models.ContactWithUser
		err := rows.Scan(
			&contact.ID, &contact.UserID, &contact.CreatedAt,
			&contact.Contact.ID, &contact.Contact.Email, &contact.Contact.Phone,
		)
		if err != nil {
			continue
		}
		contacts = append(contacts, contact)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    contacts,
	})
}

// RemoveContact deletes the relation to a contact user. Removing an
// absent contact succeeds; the end state is the same.
func RemoveContact(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	contactID := c.Params("contactId")

	if contactID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Contact ID is required",
		})
	}

	_, err := database.Pool.Exec(context.Background(),
		"DELETE FROM contacts WHERE user_id = $1 AND contact_id = $2", userID, contactID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to remove contact",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact removed successfully",
	})
}
