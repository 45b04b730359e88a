// Package ratelimit provides echo rate limiter stores. The Redis store keeps
// counters shared between instances; the memory store is a per-process
// token bucket.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RedisStore is a fixed-window counter per identifier.
type RedisStore struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
	logger *zap.Logger
}

// NewRedisStore allows limit requests per window for each identifier.
func NewRedisStore(client *redis.Client, prefix string, limit int, window time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		logger: logger,
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := fmt.Sprintf("%s:%s:%d", s.prefix, identifier, time.Now().UnixNano()/int64(s.window))

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		// Fail open while Redis is unreachable.
		s.logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return true, nil
	}

	return incr.Val() <= s.limit, nil
}

// NewMemoryStore is a token bucket of rps requests per second with burst.
func NewMemoryStore(rps float64, burst int) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
}

// NewStore returns a Redis store when redisURL is set and a memory store
// otherwise. The Redis window is sized so the steady-state rate matches rps.
func NewStore(redisURL string, rps float64, burst int, logger *zap.Logger) (middleware.RateLimiterStore, func() error, error) {
	if redisURL == "" {
		return NewMemoryStore(rps, burst), func() error { return nil }, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	window := time.Minute
	limit := int(math.Ceil(rps*window.Seconds())) + burst
	return NewRedisStore(client, "ratelimit", limit, window, logger), client.Close, nil
}
