// Package ratelimit throttles abusive callers of the public auth endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// slidingWindowScript atomically trims, counts and records one request.
// Returns 1 when allowed, otherwise the negative wait time in milliseconds.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local max_requests = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local count = redis.call('ZCARD', key)

	if count < max_requests then
		redis.call('ZADD', key, now, now .. '-' .. math.random())
		redis.call('PEXPIRE', key, window_ms * 2)
		return 1
	else
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
		if #oldest > 0 then
			return -(oldest[2] + window_ms - now)
		end
		return 0
	end
`)

// SlidingWindowLimiter implements sliding window rate limiting using Redis,
// falling back to an in-process fixed window when Redis is unavailable.
type SlidingWindowLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	prefix string
	local  *fixedWindow
}

// NewSlidingWindowLimiter creates a limiter allowing limit requests per window.
// redisClient may be nil.
func NewSlidingWindowLimiter(redisClient *redis.Client, limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
		local:  newFixedWindow(limit, window),
	}
}

// Limit returns the configured number of requests per window.
func (l *SlidingWindowLimiter) Limit() int {
	return l.limit
}

// Allow checks if request is allowed and returns wait duration if not.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.redis == nil {
		return l.local.allow(key, time.Now())
	}

	now := time.Now()
	windowStart := now.Add(-l.window)

	result, err := slidingWindowScript.Run(ctx, l.redis, []string{fmt.Sprintf("%s%s", l.prefix, key)},
		now.UnixMilli(),
		windowStart.UnixMilli(),
		l.limit,
		l.window.Milliseconds(),
	).Int64()
	if err != nil {
		return l.local.allow(key, now)
	}

	if result == 1 {
		return true, 0
	}
	if result < 0 {
		return false, time.Duration(-result) * time.Millisecond
	}
	return false, l.window
}

// =============================================================================
// fixedWindow - in-memory fallback
// =============================================================================

type windowInfo struct {
	count     int
	expiresAt time.Time
}

type fixedWindow struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	requests map[string]*windowInfo
}

const fixedWindowSweepSize = 10000

func newFixedWindow(limit int, window time.Duration) *fixedWindow {
	return &fixedWindow{
		limit:    limit,
		window:   window,
		requests: make(map[string]*windowInfo),
	}
}

func (w *fixedWindow) allow(key string, now time.Time) (bool, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.requests) >= fixedWindowSweepSize {
		for k, info := range w.requests {
			if now.After(info.expiresAt) {
				delete(w.requests, k)
			}
		}
	}

	info, ok := w.requests[key]
	if !ok || now.After(info.expiresAt) {
		w.requests[key] = &windowInfo{count: 1, expiresAt: now.Add(w.window)}
		return true, 0
	}

	if info.count >= w.limit {
		return false, info.expiresAt.Sub(now)
	}

	info.count++
	return true, 0
}
