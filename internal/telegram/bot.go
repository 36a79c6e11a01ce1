package telegram

import (
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram Bot API used to confirm phone verification.
// A nil *Bot is valid and drops all sends, so callers don't need to
// care whether a token was configured.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewFromEnv creates a Bot from TELEGRAM_BOT_TOKEN. Returns nil when
// the token is unset.
func NewFromEnv() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Telegram bot authorized as @%s", api.Self.UserName)
	return &Bot{api: api}, nil
}

// SendMessage sends a text message to a Telegram user
func (b *Bot) SendMessage(telegramUserID, text string) error {
	if b == nil {
		return nil
	}

	chatID, err := strconv.ParseInt(telegramUserID, 10, 64)
	if err != nil {
		return err
	}

	_, err = b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
