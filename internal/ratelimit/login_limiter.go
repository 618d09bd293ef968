// Package ratelimit bounds admin login attempts per client address.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lumiere-stone/atelier/internal/cache"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one recorded attempt. Remaining is -1 when
// attempts are not counted.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter int // seconds
}

// LoginLimiter records an attempt from client and decides whether it may
// proceed. client is the caller's network address, never the session id.
type LoginLimiter interface {
	Check(ctx context.Context, client string) (Decision, error)
}

// Disabled allows every attempt. Used when Redis is not configured.
type Disabled struct{}

func (Disabled) Check(context.Context, string) (Decision, error) {
	return Decision{Allowed: true, Remaining: -1}, nil
}

// RedisLimiter keeps a sliding window of attempt timestamps per client in a
// sorted set.
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
	now         func() time.Time
}

func NewRedisLimiter(client *redis.Client, maxAttempts int64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxAttempts: maxAttempts, window: window, now: time.Now}
}

func (l *RedisLimiter) Check(ctx context.Context, client string) (Decision, error) {
	key := cache.Key(cache.LoginKeyPrefix, client)

	now := l.now()
	windowStart := now.Unix() - int64(l.window.Seconds())

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("recording login attempt: %w", err)
	}

	attempts := count.Val()
	if attempts <= l.maxAttempts {
		return Decision{Allowed: true, Remaining: int(l.maxAttempts - attempts)}, nil
	}

	oldest, err := l.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("reading oldest login attempt: %w", err)
	}

	retryAfter := int64(l.window.Seconds())
	if len(oldest) > 0 {
		retryAfter -= now.Unix() - int64(oldest[0].Score)
	}
	if retryAfter < 1 {
		retryAfter = 1
	}

	return Decision{Allowed: false, RetryAfter: int(retryAfter)}, nil
}
