package handlers

import (
	"log"

	"kirim/server/internal/middleware"
	"kirim/server/internal/relay"
	"kirim/server/internal/store"
	"kirim/server/internal/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

var (
	// Hub is the relay hub instance
	Hub *relay.Hub
)

// InitRelay starts the relay hub backed by the given store
func InitRelay(s *store.Store) {
	Hub = relay.NewHub(s)
	go Hub.Run()
	log.Println("✅ Relay hub initialized")
}

// RelayAuth authenticates the WebSocket handshake. Browser WebSocket
// clients cannot set headers, so the bearer token is also accepted as a
// query parameter. A missing or invalid credential rejects the request
// before the upgrade — an unauthenticated connection never exists, so
// no event can arrive on one.
func RelayAuth(c *fiber.Ctx) error {
	tokenString := c.Query("token")
	if tokenString == "" {
		tokenString = middleware.TokenFromRequest(c)
	}

	if tokenString == "" {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	c.Locals("userID", claims.UserID)

	return c.Next()
}

// WebSocketUpgrade checks if the request should be upgraded to WebSocket
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}

	return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{
		"success": false,
		"error":   "WebSocket upgrade required",
	})
}

// WebSocketHandler handles an authenticated WebSocket connection
func WebSocketHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)

	client := relay.NewClient(userID, c, Hub)

	Hub.Register <- client

	go client.WritePump()
	client.ReadPump() // blocks until the connection closes
}

// GetWebSocketStats returns live connection statistics
func GetWebSocketStats(c *fiber.Ctx) error {
	if Hub == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "Relay hub not initialized",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"onlineUsers": Hub.OnlineCount(),
			"userIds":     Hub.OnlineUsers(),
		},
	})
}
