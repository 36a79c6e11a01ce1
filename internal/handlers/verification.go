package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"kirim/server/internal/database"
	"kirim/server/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// TelegramWebhookRequest is the subset of the Telegram update payload
// the webhook cares about
type TelegramWebhookRequest struct {
	Message *struct {
		Text string `json:"text"`
		From *struct {
			ID int64 `json:"id"`
		} `json:"from"`
	} `json:"message"`
}

// GenerateVerificationLink creates a single-use code and the Telegram
// deep link that carries it. The code expires after one hour.
func GenerateVerificationLink(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to generate verification code",
		})
	}

	expiresAt := time.Now().Add(1 * time.Hour)

	_, err = database.Pool.Exec(context.Background(), `
		INSERT INTO verification_codes (user_id, code, expires_at)
		VALUES ($1, $2, $3)
	`, userID, code, expiresAt)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to store verification code",
		})
	}

	botUsername := os.Getenv("TELEGRAM_BOT_USERNAME")
	if botUsername == "" {
		botUsername = "your_bot"
	}
	deepLink := fmt.Sprintf("https://t.me/%s?start=%s", botUsername, code)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"deepLink": deepLink,
			"code":     code,
		},
	})
}

// TelegramWebhook handles Telegram bot updates. A `/start <code>`
// message marks the user phone-verified. The endpoint always answers
// {ok: true} so Telegram stops retrying regardless of outcome.
func TelegramWebhook(c *fiber.Ctx) error {
	ok := fiber.Map{"ok": true}

	var req TelegramWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(ok)
	}

	if req.Message == nil || req.Message.From == nil {
		return c.JSON(ok)
	}

	text := req.Message.Text
	if !strings.HasPrefix(text, "/start ") {
		return c.JSON(ok)
	}

	code := strings.TrimSpace(strings.TrimPrefix(text, "/start "))
	telegramUserID := fmt.Sprintf("%d", req.Message.From.ID)

	if err := verifyCode(context.Background(), code, telegramUserID); err != nil {
		log.Printf("Verification failed for code %q: %v", code, err)
		return c.JSON(ok)
	}

	if err := Telegram.SendMessage(telegramUserID, "Your phone number is verified. You can go back to the app."); err != nil {
		log.Printf("Failed to send verification confirmation: %v", err)
	}

	return c.JSON(ok)
}

// verifyCode marks the code used and the user verified in one
// transaction, so a code can never verify two Telegram accounts.
func verifyCode(ctx context.Context, code, telegramUserID string) error {
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var codeID, userID string
	var used bool
	var expiresAt time.Time

	err = tx.QueryRow(ctx, `
		SELECT id, user_id, used, expires_at
		FROM verification_codes WHERE code = $1
		FOR UPDATE
	`, code).Scan(&codeID, &userID, &used, &expiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return errors.New("invalid verification code")
	}
	if err != nil {
		return err
	}

	if used {
		return errors.New("verification code already used")
	}

	if time.Now().After(expiresAt) {
		return errors.New("verification code expired")
	}

	if _, err := tx.Exec(ctx,
		"UPDATE verification_codes SET used = TRUE WHERE id = $1", codeID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET phone_verified = TRUE, telegram_user_id = $1, updated_at = NOW()
		WHERE id = $2
	`, telegramUserID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
