package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kirim/server/internal/middleware"
	"kirim/server/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.SendString(middleware.GetUserID(c))
	})
	return app
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	token, err := utils.GenerateToken("user-42", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-42", string(body))
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	token, err := utils.GenerateToken("user-42", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
