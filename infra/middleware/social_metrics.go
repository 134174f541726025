package middleware

import (
	"time"

	"social_server/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// TrackLatency records the handling time of every request under its route
// pattern ("GET /api/posts/:id").
func TrackLatency(reg *metrics.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		reg.Record(c.Method()+" "+c.Route().Path, time.Since(start))
		return err
	}
}
