package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// RedisLimiter is a fixed-window counter in Redis. All replicas sharing the
// Redis instance share the same budget per key.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	rate   int
	window time.Duration
}

// NewRedisLimiter allows rate hits per key in every window.
func NewRedisLimiter(client redis.Cmdable, prefix string, rate int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisLimiter{client: client, prefix: prefix, rate: rate, window: window}
}

// Allow counts one hit for key and reports whether it is within the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowID := time.Now().Truncate(l.window).Unix()
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, windowID)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= int64(l.rate), nil
}
