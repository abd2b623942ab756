package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vpsdeals/vpsdeals/internal/pkg/env"
)

// AdminTokenMiddleware authenticates requests to the admin API group
// against the ADMIN_API_TOKEN environment value. The compare runs over
// SHA-256 digests so it is constant time regardless of token length.
func AdminTokenMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		configured := strings.TrimSpace(env.GetEnv("ADMIN_API_TOKEN", ""))
		if configured == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "unavailable", "message": "Admin API is not configured"})
		}

		token := extractTokenFromHeader(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API token"})
		}

		want := sha256.Sum256([]byte(configured))
		got := sha256.Sum256([]byte(token))
		if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API token"})
		}

		return c.Next()
	}
}

func extractTokenFromHeader(c *fiber.Ctx) string {
	token := strings.TrimSpace(c.Get("X-API-Key"))
	if token != "" {
		return token
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
