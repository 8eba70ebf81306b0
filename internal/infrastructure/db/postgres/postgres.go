package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultTimeout = 5 * time.Second
	connectRetries = 5
	retryInterval  = 2 * time.Second
)

// Config captures the settings for the optional Postgres credential store.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Connect opens a pool and pings it, retrying a few times while the database
// comes up.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres config: %w", err)
	}

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return pool, nil
		}
		if attempt == connectRetries {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	pool.Close()
	return nil, fmt.Errorf("postgres ping after %d attempts: %w", connectRetries, err)
}
