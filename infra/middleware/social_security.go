package middleware

import (
	"strings"

	"social_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// SecurityHeaders adds security headers to all responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		return c.Next()
	}
}

// PreventPathTraversal blocks path traversal attempts
func PreventPathTraversal() fiber.Handler {
	traversalPatterns := []string{
		"..",
		"..%2f",
		"..%5c",
		"%2e%2e",
		"..\\",
	}

	return func(c *fiber.Ctx) error {
		path := strings.ToLower(c.Path())
		for _, pattern := range traversalPatterns {
			if strings.Contains(path, pattern) {
				return apperr.BadRequest("Invalid path")
			}
		}
		return c.Next()
	}
}

// RequireJSON rejects write requests whose body is not JSON.
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
			if len(c.Body()) > 0 && !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
				return apperr.New(apperr.CodeBadRequest, "Content-Type must be application/json", fiber.StatusUnsupportedMediaType)
			}
		}
		return c.Next()
	}
}

// NoCache marks API responses as uncacheable; they carry per-user data.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Set("Pragma", "no-cache")
		return c.Next()
	}
}
