package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCounter mimics INCR + EXPIRE NX with a controllable clock.
type memCounter struct {
	mu      sync.Mutex
	now     time.Time
	counts  map[string]int64
	expires map[string]time.Time
	err     error
}

func newMemCounter() *memCounter {
	return &memCounter{
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
	}
}

func (c *memCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	if exp, ok := c.expires[key]; ok && !c.now.Before(exp) {
		delete(c.counts, key)
		delete(c.expires, key)
	}
	c.counts[key]++
	if _, ok := c.expires[key]; !ok {
		c.expires[key] = c.now.Add(window)
	}
	return c.counts[key], nil
}

func (c *memCounter) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	delete(c.counts, key)
	delete(c.expires, key)
	return nil
}

func (c *memCounter) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestThrottleKey_Normalizes(t *testing.T) {
	assert.Equal(t, "login:jane@example.com", throttleKey("  Login:Jane@Example.COM "))
}

func TestLoginThrottle_DeniesOverLimit(t *testing.T) {
	ctx := context.Background()
	th := newLoginThrottle(newMemCounter(), 3, time.Minute)

	for i := 1; i <= 3; i++ {
		ok, err := th.Allow(ctx, "login:jane@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should be allowed", i)
	}
	ok, err := th.Allow(ctx, "LOGIN:Jane@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "fourth attempt in the window should be denied")

	ok, err = th.Allow(ctx, "login:other@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "other keys are counted separately")
}

func TestLoginThrottle_WindowStartsAtFirstAttempt(t *testing.T) {
	ctx := context.Background()
	counter := newMemCounter()
	th := newLoginThrottle(counter, 1, time.Minute)

	ok, _ := th.Allow(ctx, "login:jane@example.com")
	require.True(t, ok)

	counter.advance(30 * time.Second)
	ok, _ = th.Allow(ctx, "login:jane@example.com")
	assert.False(t, ok)

	counter.advance(31 * time.Second)
	ok, _ = th.Allow(ctx, "login:jane@example.com")
	assert.True(t, ok, "window should have expired a minute after the first attempt")
}

func TestLoginThrottle_ResetClearsCounter(t *testing.T) {
	ctx := context.Background()
	th := newLoginThrottle(newMemCounter(), 1, time.Minute)

	ok, _ := th.Allow(ctx, "login:jane@example.com")
	require.True(t, ok)
	ok, _ = th.Allow(ctx, "login:jane@example.com")
	require.False(t, ok)

	require.NoError(t, th.Reset(ctx, "login:Jane@Example.com"))

	ok, err := th.Allow(ctx, "login:jane@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginThrottle_CounterErrorIsWrapped(t *testing.T) {
	counter := newMemCounter()
	counter.err = errors.New("READONLY")
	th := newLoginThrottle(counter, 3, time.Minute)

	ok, err := th.Allow(context.Background(), "login:jane@example.com")
	assert.False(t, ok)
	assert.ErrorIs(t, err, counter.err)
}

func TestLoginThrottle_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	th := NewLoginThrottle(client, 3, time.Minute)

	ok, err := th.Allow(context.Background(), "login:jane@example.com")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, th.Reset(context.Background(), "login:jane@example.com"))
}
