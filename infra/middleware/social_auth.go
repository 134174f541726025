package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"social_server/pkg/apperr"
	"social_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Locals keys set by JWTAuth.
const (
	LocalUserID         = "user_id"
	LocalTokenID        = "token_id"
	LocalTokenExpiresAt = "token_expires_at"
)

// LegacyTokenHeader is accepted when no Authorization header is sent.
const LegacyTokenHeader = "x-auth-token"

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTAuth validates HS256 access tokens. revoked may be nil.
func JWTAuth(secret string, revoked RevocationChecker) fiber.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(time.Minute),
	)
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		// Skip auth for CORS preflight requests
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		tokenString := bearerToken(c)
		if tokenString == "" {
			return apperr.NoToken()
		}

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			logger.WithError(err).Debug("JWT validation failed")
			return apperr.InvalidToken(err)
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return apperr.InvalidToken(err)
		}

		// Check token blacklist (account deletion)
		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				// Fail open when the store is unreachable.
				logger.WithError(err).Warn("Token revocation check failed")
			} else if isRevoked {
				return apperr.InvalidToken(errors.New("token revoked"))
			}
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Locals(LocalTokenExpiresAt, claims.ExpiresAt.Time)
		}

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.Get(LegacyTokenHeader))
}
