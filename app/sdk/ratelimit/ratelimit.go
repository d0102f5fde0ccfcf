// Package ratelimit counts failed logins in redis using a fixed window per
// key.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the throttle parameters.
type Config struct {
	MaxAttempts int
	Window      time.Duration
}

// Limiter counts failures per key. A key is refused once MaxAttempts
// failures were recorded inside the current window.
type Limiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

var failScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// New constructs a limiter over the redis client.
func New(client *redis.Client, cfg Config) (*Limiter, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}

	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}

	l := Limiter{
		client: client,
		max:    cfg.MaxAttempts,
		window: cfg.Window,
	}

	return &l, nil
}

// Open parses a redis URL and returns a connected client.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return client, nil
}

// Allowed reports whether another attempt may be made for the key.
func (l *Limiter) Allowed(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("get: %w", err)
	}

	return n < l.max, nil
}

// Failed records a failed attempt. The window starts with the first
// failure.
func (l *Limiter) Failed(ctx context.Context, key string) error {
	if err := failScript.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("incr: %w", err)
	}

	return nil
}

// Reset forgets the failures of the key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del: %w", err)
	}

	return nil
}
