package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestSlidingWindowLimiter_LocalFallback(t *testing.T) {
	l := NewSlidingWindowLimiter(nil, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}

	ok, wait := l.Allow(ctx, "1.2.3.4")
	if ok {
		t.Fatal("4th request allowed, want rejected")
	}
	if wait <= 0 || wait > time.Minute {
		t.Fatalf("wait = %v, want (0, 1m]", wait)
	}

	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("other key should have its own window")
	}
}

func TestFixedWindow_ResetsAfterExpiry(t *testing.T) {
	w := newFixedWindow(1, time.Second)
	start := time.Now()

	if ok, _ := w.allow("k", start); !ok {
		t.Fatal("first request rejected")
	}
	if ok, _ := w.allow("k", start.Add(500*time.Millisecond)); ok {
		t.Fatal("second request inside window allowed")
	}
	if ok, _ := w.allow("k", start.Add(2*time.Second)); !ok {
		t.Fatal("request after window rejected")
	}
}
