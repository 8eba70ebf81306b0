package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowCounter increments a key whose expiry is set on the first hit.
type windowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Del(ctx context.Context, key string) error
}

type redisCounter struct {
	client *redis.Client
}

func (c redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c redisCounter) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// LoginThrottle counts login attempts per key in a fixed window.
// Keys are stored lowercased, e.g. login:<email>.
type LoginThrottle struct {
	counter     windowCounter
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle allowing maxAttempts per window.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return newLoginThrottle(redisCounter{client: client}, maxAttempts, window)
}

func newLoginThrottle(counter windowCounter, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{counter: counter, maxAttempts: int64(maxAttempts), window: window}
}

// Allow records one attempt and reports whether it is within the limit. The
// window starts at the first attempt.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	n, err := t.counter.Incr(ctx, throttleKey(key), t.window)
	if err != nil {
		return false, fmt.Errorf("login throttle: %w", err)
	}
	return n <= t.maxAttempts, nil
}

// Reset clears the attempt counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	return t.counter.Del(ctx, throttleKey(key))
}

func throttleKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
