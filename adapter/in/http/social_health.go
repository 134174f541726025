package http

import (
	"context"
	"time"

	"social_server/infra/database"
	"social_server/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	mongo     *mongo.Client
	redis     *redis.Client
	latencies *metrics.Registry
}

// NewHealthHandler creates a HealthHandler. Any argument may be nil.
func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client, latencies *metrics.Registry) *HealthHandler {
	return &HealthHandler{
		mongo:     mongoClient,
		redis:     redisClient,
		latencies: latencies,
	}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
	app.Get("/health/stats", h.Stats)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	// Check MongoDB
	if h.mongo != nil {
		if err := h.mongo.Ping(ctx, nil); err != nil {
			checks["mongodb"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			checks["mongodb"] = "healthy"
		}
	} else {
		checks["mongodb"] = "not configured"
	}

	// Check Redis
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "not configured"
	}

	status := "ready"
	statusCode := fiber.StatusOK
	if !allHealthy {
		status = "not ready"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Stats reports connection pool statistics and per-route latencies.
func (h *HealthHandler) Stats(c *fiber.Ctx) error {
	stats := fiber.Map{}
	if h.latencies != nil {
		stats["latency"] = h.latencies.Snapshot()
	}
	if h.redis != nil {
		stats["redis"] = database.GetRedisStats(h.redis)
	}
	if h.mongo != nil {
		stats["mongodb"] = fiber.Map{"sessions_in_progress": h.mongo.NumberSessionsInProgress()}
	}
	return c.JSON(stats)
}
