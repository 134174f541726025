package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisTokenStore_RejectsEmptyID(t *testing.T) {
	s := NewRedisTokenStore(unreachableRedis(t))

	err := s.Revoke(context.Background(), "", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token id cannot be empty")
}

func TestRedisTokenStore_SurfacesConnectionErrors(t *testing.T) {
	s := NewRedisTokenStore(unreachableRedis(t))
	ctx := context.Background()

	assert.Error(t, s.Revoke(ctx, "jti-1", time.Minute))

	revoked, err := s.IsRevoked(ctx, "jti-1")
	assert.Error(t, err)
	assert.False(t, revoked)
}
