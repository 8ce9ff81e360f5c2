package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestLimiterAllowSlidingWindow(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	limiter := Limiter{Client: client, Prefix: "test:"}

	ctx := context.Background()
	window := 2 * time.Second
	max := 2

	for i := 0; i < max; i++ {
		allowed, remaining, _, err := limiter.Allow(ctx, "key", window, max)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !allowed {
			t.Fatalf("expected request %d to be allowed", i)
		}
		if remaining != max-(i+1) {
			t.Fatalf("unexpected remaining: %d", remaining)
		}
	}

	allowed, remaining, _, err := limiter.Allow(ctx, "key", window, max)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("expected third request to be rejected")
	}
	if remaining != 0 {
		t.Fatalf("expected remaining 0, got %d", remaining)
	}

	mr.FastForward(window)

	allowed, _, _, err = limiter.Allow(ctx, "key", window, max)
	if err != nil {
		t.Fatalf("allow after window: %v", err)
	}
	if !allowed {
		t.Fatal("expected request after window to be allowed")
	}
}

func TestLimiterRejectedAttemptsDoNotCount(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	limiter := Limiter{Client: client, Prefix: "test:"}
	ctx := context.Background()

	var firstReset time.Time
	for i := 0; i < 5; i++ {
		allowed, _, reset, err := limiter.Allow(ctx, "checkout:user:1", time.Minute, 2)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if i < 2 && !allowed {
			t.Fatalf("expected request %d to be allowed", i)
		}
		if i >= 2 {
			if allowed {
				t.Fatalf("expected request %d to be rejected", i)
			}
			if firstReset.IsZero() {
				firstReset = reset
			} else if !reset.Equal(firstReset) {
				t.Fatalf("reset moved from %v to %v", firstReset, reset)
			}
		}
	}

	members, err := mr.ZMembers("test:checkout:user:1")
	if err != nil {
		t.Fatalf("zmembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 recorded requests, got %d", len(members))
	}
}
