package routes

import (
	"kirim/server/internal/handlers"
	"kirim/server/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// API v1 group
	api := app.Group("/api/v1")

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Kirim API is running",
		})
	})

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.StrictRateLimiter(), handlers.Register)
	auth.Post("/login", middleware.StrictRateLimiter(), handlers.Login)
	auth.Post("/logout", middleware.AuthMiddleware, handlers.Logout)
	auth.Get("/me", middleware.AuthMiddleware, handlers.GetMe)

	// User routes (protected)
	users := api.Group("/users", middleware.AuthMiddleware)
	users.Get("/search", handlers.SearchByPhone)
	users.Get("/:id", handlers.GetUser)

	// Contact routes (protected)
	contacts := api.Group("/contacts", middleware.AuthMiddleware)
	contacts.Post("/", handlers.AddContact)
	contacts.Get("/", handlers.GetContacts)
	contacts.Delete("/:contactId", handlers.RemoveContact)

	// Chat routes (protected)
	chats := api.Group("/chats", middleware.AuthMiddleware)
	chats.Post("/", handlers.CreateChat)
	chats.Get("/", handlers.GetChats)
	chats.Get("/:chatId", handlers.GetChat)

	// Message routes (protected)
	messages := api.Group("/messages", middleware.AuthMiddleware)
	messages.Post("/", handlers.SendMessage)
	messages.Get("/chat/:chatId", handlers.GetMessages)

	// Phone verification via Telegram
	verification := api.Group("/verification")
	verification.Post("/generate", middleware.AuthMiddleware, handlers.GenerateVerificationLink)
	verification.Post("/webhook", handlers.TelegramWebhook)

	// Upload routes (protected)
	uploads := api.Group("/upload", middleware.AuthMiddleware)
	uploads.Post("/file", middleware.UploadRateLimiter(), handlers.UploadFile)

	// Serve uploaded files (public)
	app.Get("/uploads/:type/:filename", handlers.GetFile)

	// WebSocket relay (token checked before the upgrade)
	api.Get("/ws", handlers.RelayAuth, handlers.WebSocketUpgrade, websocket.New(handlers.WebSocketHandler))

	// WebSocket stats (protected, for debugging)
	api.Get("/ws/stats", middleware.AuthMiddleware, handlers.GetWebSocketStats)
}
