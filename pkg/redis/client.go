package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned by HealthCheck when Initialize never succeeded.
var ErrNotConfigured = errors.New("redis: client not initialized")

var (
	mu     sync.RWMutex
	client *redis.Client
)

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://... or rediss://... (TLS, Upstash)
	Password string // overrides the password embedded in URL
}

// Client returns the shared client, or nil when Redis is not configured.
func Client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// Initialize connects the shared client. On failure the client stays nil and
// callers fall back to their in-memory paths.
func Initialize(ctx context.Context, cfg Config) error {
	if cfg.URL == "" {
		return errors.New("redis: UPSTASH_REDIS_URL not configured")
	}

	// ParseURL enables TLS for the rediss scheme
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2

	c := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis: connection failed: %w", err)
	}

	SetClient(c)
	return nil
}

// SetClient installs c as the shared client. Passing nil disables Redis.
func SetClient(c *redis.Client) {
	mu.Lock()
	client = c
	mu.Unlock()
}

// Close closes the shared client, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// HealthCheck pings the shared client.
func HealthCheck(ctx context.Context) error {
	c := Client()
	if c == nil {
		return ErrNotConfigured
	}
	return c.Ping(ctx).Err()
}
