package middleware

import (
	"strings"

	"kirim/server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the JWT from the token cookie or a Bearer
// Authorization header
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := TokenFromRequest(c)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized - No token provided",
		})
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Unauthorized - Invalid token",
		})
	}

	c.Locals("userID", claims.UserID)
	c.Locals("email", claims.Email)

	return c.Next()
}

// TokenFromRequest extracts the bearer credential from a cookie or the
// Authorization header
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("token"); token != "" {
		return token
	}

	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}

// GetUserID gets user ID from context
func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}
