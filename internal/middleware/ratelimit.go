package middleware

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"
)

var limiterStorage fiber.Storage

// InitRateLimitStorage points the limiters at Redis when REDIS_URL is
// set, so limits hold across replicas. Without it each process keeps
// its own in-memory counters.
func InitRateLimitStorage() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return
	}

	limiterStorage = redis.New(redis.Config{URL: redisURL})
	log.Println("✅ Rate limiter using Redis storage")
}

// RateLimiter creates a rate limiting middleware
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		Storage:    limiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Use user ID if authenticated, otherwise use IP
			userID := c.Locals("userID")
			if userID != nil {
				return userID.(string)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please try again later",
			})
		},
	})
}

// StrictRateLimiter for sensitive endpoints (e.g., auth)
func StrictRateLimiter() fiber.Handler {
	return RateLimiter(5, 15*time.Minute)
}

// UploadRateLimiter for file uploads
func UploadRateLimiter() fiber.Handler {
	return RateLimiter(10, 5*time.Minute)
}
