// Package redis backs the token denylist with Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config selects the Redis instance. URL, when set, takes precedence over
// the discrete fields and may carry credentials and a database number,
// e.g. redis://:secret@cache:6379/2.
type Config struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

func (c Config) options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}, nil
}

// Connect opens a client and pings it. The client is closed again when the
// ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
