package database

import (
	"testing"
	"time"
)

func TestDefaultMongoConfig(t *testing.T) {
	t.Setenv("MONGODB_MAX_POOL", "42")

	cfg := DefaultMongoConfig()
	if cfg.MaxPoolSize != 42 {
		t.Errorf("MaxPoolSize = %d, want 42", cfg.MaxPoolSize)
	}
	if cfg.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v", cfg.ConnectTimeout)
	}
}

func TestDefaultRedisConfig_IgnoresGarbage(t *testing.T) {
	t.Setenv("REDIS_POOL_SIZE", "lots")

	if got := DefaultRedisConfig().PoolSize; got != 20 {
		t.Errorf("PoolSize = %d, want 20", got)
	}
}

func TestNewRedis_EmptyURL(t *testing.T) {
	client, err := NewRedis("")
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client for empty URL")
	}
	if GetRedisStats(client) != nil {
		t.Fatal("expected nil stats for nil client")
	}
}

func TestNewRedis_InvalidURL(t *testing.T) {
	if _, err := NewRedis("not-a-url://"); err == nil {
		t.Fatal("expected error")
	}
}
