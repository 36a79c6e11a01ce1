package main

import (
	"log"
	"os"

	"kirim/server/internal/database"
	"kirim/server/internal/handlers"
	"kirim/server/internal/middleware"
	"kirim/server/internal/routes"
	"kirim/server/internal/store"
	"kirim/server/internal/telegram"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	bot, err := telegram.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	s := store.New(database.Pool)
	handlers.Init(s, bot)
	handlers.InitRelay(s)
	middleware.InitRateLimitStorage()

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Kirim API v1.0",
	})

	// Middleware
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     frontendURL,
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(app)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
