package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

// setupTestCache creates a cache instance for testing.
// Skips the test when no Redis is reachable.
func setupTestCache(t *testing.T, prefix string) (*Cache, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	cleanupKeys(ctx, client, prefix+"*")

	c := New(client, prefix, 5*time.Minute)

	cleanup := func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	}

	return c, cleanup
}

func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

func TestNew(t *testing.T) {
	c := New(nil, "movies:", 10*time.Minute)

	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.prefix != "movies:" {
		t.Errorf("prefix = %q, want %q", c.prefix, "movies:")
	}
	if c.ttl != 10*time.Minute {
		t.Errorf("ttl = %v, want %v", c.ttl, 10*time.Minute)
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:setget:")
	defer cleanup()

	ctx := context.Background()

	type record struct {
		ID    string `json:"id"`
		Owner string `json:"owner"`
		Name  string `json:"name"`
	}

	in := record{ID: "64f1b2c3d4e5f60718293a4b", Owner: "user-1", Name: "The Shining"}
	if err := c.Set(ctx, "movie", in); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out record
	found, err := c.Get(ctx, "movie", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() returned found = false, want true")
	}
	if out != in {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:miss:")
	defer cleanup()

	var out string
	found, err := c.Get(context.Background(), "nonexistent", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() returned found = true for a missing key")
	}
}

func TestCache_Delete(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:delete:")
	defer cleanup()

	ctx := context.Background()

	if err := c.Set(ctx, "to-delete", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := c.Delete(ctx, "to-delete"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var out string
	found, _ := c.Get(ctx, "to-delete", &out)
	if found {
		t.Error("key should not exist after deletion")
	}
}

func TestCache_KeyPrefix(t *testing.T) {
	c, cleanup := setupTestCache(t, "myprefix:")
	defer cleanup()

	ctx := context.Background()

	if err := c.Set(ctx, "mykey", "myvalue"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	raw, err := c.client.Get(ctx, "myprefix:mykey").Result()
	if err != nil {
		t.Fatalf("direct redis get error = %v", err)
	}
	if raw != `"myvalue"` { // JSON encoded string
		t.Errorf("stored value = %q, want %q", raw, `"myvalue"`)
	}
}

func TestCache_Snapshot(t *testing.T) {
	c, cleanup := setupTestCache(t, "test:stats:")
	defer cleanup()

	ctx := context.Background()

	c.Set(ctx, "stats-key", "value")

	var out string
	c.Get(ctx, "stats-key", &out)
	c.Get(ctx, "nonexistent", &out)
	c.Get(ctx, "stats-key", &out)
	c.Delete(ctx, "stats-key")

	stats := c.Snapshot()
	if stats.Sets != 1 {
		t.Errorf("Sets = %d, want 1", stats.Sets)
	}
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Deletes != 1 {
		t.Errorf("Deletes = %d, want 1", stats.Deletes)
	}
}
