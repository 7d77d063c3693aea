package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RequestsPerWindow != 10 {
		t.Errorf("RequestsPerWindow = %d, want 10", cfg.RequestsPerWindow)
	}
	if cfg.WindowSize != time.Minute {
		t.Errorf("WindowSize = %v, want %v", cfg.WindowSize, time.Minute)
	}
}

func TestNewSlidingWindowLimiter(t *testing.T) {
	// nil client is fine for construction
	limiter := NewSlidingWindowLimiter(nil, DefaultConfig(), "test:")

	if limiter == nil {
		t.Fatal("NewSlidingWindowLimiter returned nil")
	}
	if limiter.prefix != "test:" {
		t.Errorf("prefix = %q, want %q", limiter.prefix, "test:")
	}
}

// setupTestLimiter skips the test when no Redis is reachable.
func setupTestLimiter(t *testing.T, cfg Config) (*SlidingWindowLimiter, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	limiter := NewSlidingWindowLimiter(client, cfg, "test:ratelimit:")

	cleanup := func() {
		client.Close()
	}

	return limiter, cleanup
}

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	limiter, cleanup := setupTestLimiter(t, Config{
		RequestsPerWindow: 3,
		WindowSize:        time.Minute,
	})
	defer cleanup()

	ctx := context.Background()
	key := "allow-" + time.Now().Format("150405.000000")
	defer limiter.Reset(ctx, key)

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, key)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !result.Allowed {
			t.Errorf("request %d should be allowed", i+1)
		}
		wantRemaining := 3 - i - 1
		if result.Remaining != wantRemaining {
			t.Errorf("request %d: Remaining = %d, want %d", i+1, result.Remaining, wantRemaining)
		}
	}

	result, err := limiter.Allow(ctx, key)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if result.Allowed {
		t.Error("fourth request should be denied")
	}
	if result.Remaining != 0 {
		t.Errorf("denied request: Remaining = %d, want 0", result.Remaining)
	}
	if result.RetryAfter <= 0 {
		t.Errorf("denied request: RetryAfter = %v, want > 0", result.RetryAfter)
	}
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	limiter, cleanup := setupTestLimiter(t, Config{
		RequestsPerWindow: 1,
		WindowSize:        time.Minute,
	})
	defer cleanup()

	ctx := context.Background()
	suffix := time.Now().Format("150405.000000")
	keyA := "ip-a-" + suffix
	keyB := "ip-b-" + suffix
	defer limiter.Reset(ctx, keyA)
	defer limiter.Reset(ctx, keyB)

	if result, err := limiter.Allow(ctx, keyA); err != nil || !result.Allowed {
		t.Fatalf("first request for keyA: allowed = %v, err = %v", result != nil && result.Allowed, err)
	}
	if result, err := limiter.Allow(ctx, keyA); err != nil || result.Allowed {
		t.Fatalf("second request for keyA should be denied, err = %v", err)
	}

	// keyB starts with a fresh window
	result, err := limiter.Allow(ctx, keyB)
	if err != nil {
		t.Fatalf("Allow() for keyB error = %v", err)
	}
	if !result.Allowed {
		t.Error("keyB should not be affected by keyA's limit")
	}
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	limiter, cleanup := setupTestLimiter(t, Config{
		RequestsPerWindow: 1,
		WindowSize:        200 * time.Millisecond,
	})
	defer cleanup()

	ctx := context.Background()
	key := "slide-" + time.Now().Format("150405.000000")
	defer limiter.Reset(ctx, key)

	if result, err := limiter.Allow(ctx, key); err != nil || !result.Allowed {
		t.Fatalf("first request: allowed = %v, err = %v", result != nil && result.Allowed, err)
	}
	if result, err := limiter.Allow(ctx, key); err != nil || result.Allowed {
		t.Fatalf("second request inside window should be denied, err = %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	result, err := limiter.Allow(ctx, key)
	if err != nil {
		t.Fatalf("Allow() after window error = %v", err)
	}
	if !result.Allowed {
		t.Error("request after the window slid should be allowed")
	}
}

func TestSlidingWindowLimiter_Reset(t *testing.T) {
	limiter, cleanup := setupTestLimiter(t, Config{
		RequestsPerWindow: 1,
		WindowSize:        time.Minute,
	})
	defer cleanup()

	ctx := context.Background()
	key := "reset-" + time.Now().Format("150405.000000")
	defer limiter.Reset(ctx, key)

	if result, err := limiter.Allow(ctx, key); err != nil || !result.Allowed {
		t.Fatalf("first request: allowed = %v, err = %v", result != nil && result.Allowed, err)
	}
	if result, err := limiter.Allow(ctx, key); err != nil || result.Allowed {
		t.Fatalf("second request should be denied, err = %v", err)
	}

	if err := limiter.Reset(ctx, key); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	result, err := limiter.Allow(ctx, key)
	if err != nil {
		t.Fatalf("Allow() after reset error = %v", err)
	}
	if !result.Allowed {
		t.Error("request after reset should be allowed")
	}
}
