package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"social_server/core/port/out"

	"github.com/redis/go-redis/v9"
)

// RevokedTokenKey Redis key prefix for revoked access tokens
const RevokedTokenKey = "token:revoked:"

var _ out.TokenStore = (*RedisTokenStore)(nil)

// RedisTokenStore keeps revoked token ids until their natural expiry.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new Redis token store.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id cannot be empty")
	}
	if err := s.client.Set(ctx, RevokedTokenKey+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, RevokedTokenKey+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}
