package handlers

import (
	"kirim/server/internal/store"
	"kirim/server/internal/telegram"
)

var (
	// Store backs the chat and message handlers and the relay
	Store *store.Store

	// Telegram sends verification confirmations; nil when no bot token
	// is configured
	Telegram *telegram.Bot
)

// Init wires the shared dependencies used across handlers
func Init(s *store.Store, bot *telegram.Bot) {
	Store = s
	Telegram = bot
}
