package bootstrap

import (
	"context"
	"strings"
	"time"

	"social_server/adapter/in/http"
	"social_server/config"
	"social_server/infra/middleware"
	"social_server/pkg/logger"
	"social_server/pkg/metrics"
	"social_server/pkg/ratelimit"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := deps.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Warn("Failed to ensure MongoDB indexes")
	}

	app := fiber.New(fiber.Config{
		AppName:               "social-api",
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		StrictRouting:         false,
		CaseSensitive:         false,

		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	latencies := metrics.NewRegistry(1000)

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())                            // 1. Panic recovery
	app.Use(middleware.RequestID())                          // 2. Request ID
	app.Use(middleware.SecurityHeaders())                    // 3. Security headers
	app.Use(middleware.PreventPathTraversal())               // 4. Path traversal protection
	app.Use(middleware.RequestLogger())                      // 5. Request logging
	app.Use(middleware.NewAuditLogger(deps.Redis).Handler()) // 6. Audit trail
	app.Use(middleware.TrackLatency(latencies))              // 7. Latency

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	allowCredentials := true
	if allowOrigins == "" || allowOrigins == "*" {
		allowOrigins = "*"
		allowCredentials = false
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Auth-Token,X-Request-ID",
		ExposeHeaders:    "X-Request-ID,X-RateLimit-Limit,Retry-After",
		AllowCredentials: allowCredentials,
		MaxAge:           86400,
	}))

	// Health check (no auth required)
	http.NewHealthHandler(deps.MongoDB, deps.Redis, latencies).Register(app)

	api := app.Group("/api")
	api.Use(middleware.RequireJSON())
	api.Use(middleware.NoCache())

	auth := middleware.JWTAuth(cfg.JWTSecret, deps.TokenStore)
	authLimit := middleware.RateLimit(ratelimit.NewSlidingWindowLimiter(deps.Redis, cfg.AuthRateLimitPerMin, time.Minute))

	http.NewAccountHandler(deps.AccountService).Register(api, auth, authLimit)
	http.NewProfileHandler(deps.ProfileService, deps.AccountService).Register(api, auth)
	http.NewPostHandler(deps.PostService).Register(api, auth)

	logger.Info("API server initialized successfully")

	return app, cleanup, nil
}
