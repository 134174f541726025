package middleware

import (
	"strconv"

	"social_server/pkg/apperr"
	"social_server/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimit throttles requests per client IP and route. It is mounted on the
// public register and login endpoints.
func RateLimit(limiter *ratelimit.SlidingWindowLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP() + ":" + c.Method() + ":" + c.Path()

		allowed, retryAfter := limiter.Allow(c.UserContext(), key)
		c.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return apperr.ErrRateLimited
		}
		return c.Next()
	}
}
