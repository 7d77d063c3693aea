// Package ratelimit provides a Redis-based sliding window rate limiter for
// the credential endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the limiter parameters.
type Config struct {
	RequestsPerWindow int
	WindowSize        time.Duration
}

// DefaultConfig limits each client IP to 10 credential attempts per minute.
func DefaultConfig() Config {
	return Config{
		RequestsPerWindow: 10,
		WindowSize:        time.Minute,
	}
}

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// SlidingWindowLimiter implements a sliding window rate limiter using Redis.
// A sorted set tracks request timestamps; entries outside the window are
// discarded before counting.
type SlidingWindowLimiter struct {
	client *redis.Client
	config Config
	prefix string
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter.
func NewSlidingWindowLimiter(client *redis.Client, config Config, prefix string) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client: client,
		config: config,
		prefix: prefix,
	}
}

// Allow checks if a request is allowed under the rate limit.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-l.config.WindowSize)
	redisKey := l.prefix + key

	// Lua keeps the trim-count-add sequence atomic
	script := redis.NewScript(`
		local key = KEYS[1]
		local counter_key = KEYS[2]
		local now = tonumber(ARGV[1])
		local window_start = tonumber(ARGV[2])
		local limit = tonumber(ARGV[3])
		local window_size_ms = tonumber(ARGV[4])

		redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

		local count = redis.call('ZCARD', key)

		if count < limit then
			local counter = redis.call('INCR', counter_key)
			redis.call('ZADD', key, now, now .. ':' .. counter)
			redis.call('PEXPIRE', key, window_size_ms)
			redis.call('PEXPIRE', counter_key, window_size_ms)
			return {1, limit - count - 1, 0}
		else
			local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
			local retry_after = 0
			if #oldest >= 2 then
				retry_after = oldest[2] + window_size_ms - now
			end
			return {0, 0, retry_after}
		end
	`)

	counterKey := redisKey + ":counter"
	result, err := script.Run(ctx, l.client, []string{redisKey, counterKey},
		now.UnixMilli(),
		windowStart.UnixMilli(),
		l.config.RequestsPerWindow,
		l.config.WindowSize.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run rate limit script: %w", err)
	}

	if len(result) != 3 {
		return nil, fmt.Errorf("unexpected rate limit script result length: %d", len(result))
	}

	res := &Result{
		Allowed:   result[0] == 1,
		Remaining: int(result[1]),
		ResetAt:   now.Add(l.config.WindowSize),
	}

	if !res.Allowed && result[2] > 0 {
		res.RetryAfter = time.Duration(result[2]) * time.Millisecond
	}

	return res, nil
}

// Reset clears the rate limit for a specific key.
func (l *SlidingWindowLimiter) Reset(ctx context.Context, key string) error {
	redisKey := l.prefix + key
	return l.client.Del(ctx, redisKey, redisKey+":counter").Err()
}
