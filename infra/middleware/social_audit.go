package middleware

import (
	"context"
	"strings"
	"time"

	"social_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditStream is the Redis stream that receives audit events.
const AuditStream = "audit:events"

// AuditEvent represents a security audit event
type AuditEvent struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	IP         string    `json:"ip"`
	StatusCode int       `json:"status_code"`
	Duration   int64     `json:"duration_ms"`
	RequestID  string    `json:"request_id"`
	Success    bool      `json:"success"`
}

// SensitiveActions maps "METHOD:/path" to an audit action name.
var SensitiveActions = map[string]string{
	"POST:/api/users":     "user_register",
	"POST:/api/auth":      "user_login",
	"DELETE:/api/profile": "account_delete",
}

// AuditLogger appends sensitive actions to a capped Redis stream.
type AuditLogger struct {
	redis  *redis.Client
	stream string
}

// NewAuditLogger returns nil when redisClient is nil; a nil logger audits nothing.
func NewAuditLogger(redisClient *redis.Client) *AuditLogger {
	if redisClient == nil {
		logger.Warn("Redis client not provided, audit logging disabled")
		return nil
	}
	return &AuditLogger{redis: redisClient, stream: AuditStream}
}

// Log writes one event to the stream.
func (a *AuditLogger) Log(ctx context.Context, event *AuditEvent) error {
	if a == nil {
		return nil
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return a.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: a.stream,
		Values: map[string]interface{}{"event": string(data)},
		MaxLen: 100000,
		Approx: true,
	}).Err()
}

// Handler records sensitive actions after the request completes. It must run
// after RequestLogger so the final status is known.
func (a *AuditLogger) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a == nil {
			return c.Next()
		}

		start := time.Now()
		action := auditAction(c.Method(), c.Path())
		if action == "" {
			return c.Next()
		}

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}

		status := c.Response().StatusCode()
		requestID, _ := c.Locals("request_id").(string)
		event := &AuditEvent{
			Action:     action,
			Method:     c.Method(),
			Path:       c.Path(),
			IP:         c.IP(),
			StatusCode: status,
			Duration:   time.Since(start).Milliseconds(),
			RequestID:  requestID,
			Success:    status < 400,
		}
		if userID, ok := c.Locals(LocalUserID).(primitive.ObjectID); ok {
			event.UserID = userID.Hex()
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if logErr := a.Log(ctx, event); logErr != nil {
			logger.WithError(logErr).Warn("Failed to log audit event")
		}
		return nil
	}
}

func auditAction(method, path string) string {
	return SensitiveActions[method+":"+strings.TrimRight(path, "/")]
}
