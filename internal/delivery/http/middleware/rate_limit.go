package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-hr-dashboard-backend/internal/delivery/http/response"
	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/logger"
	"go-hr-dashboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const rateLimitedCode = "RATE_LIMITED"

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Returns the shared Redis client, or nil to count in memory
	Client func() *goredis.Client
}

// INCR with an EXPIRE on the first hit so the window starts at the first request.
// Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type rateLimitEntry struct {
	count   int
	resetAt time.Time
	// set by sweep once the entry is no longer in the map
	removed bool
	mu      sync.Mutex
}

// memoryLimiter is the fallback used while Redis is absent or failing.
type memoryLimiter struct {
	entries sync.Map
}

func (m *memoryLimiter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	for {
		entryI, _ := m.entries.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
		entry := entryI.(*rateLimitEntry)

		entry.mu.Lock()
		if entry.removed {
			// swept between LoadOrStore and Lock; count against the live entry
			entry.mu.Unlock()
			continue
		}

		if now.After(entry.resetAt) {
			entry.count = 0
			entry.resetAt = now.Add(window)
		}
		entry.count++
		count, resetAt := entry.count, entry.resetAt
		entry.mu.Unlock()

		return count, resetAt
	}
}

func (m *memoryLimiter) sweep(now time.Time) {
	m.entries.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) && m.entries.CompareAndDelete(key, entry) {
			entry.removed = true
		}
		entry.mu.Unlock()
		return true
	})
}

// DefaultRateLimitConfig limits each client IP to limit requests per window.
func DefaultRateLimitConfig(limit int, window time.Duration, client func() *goredis.Client) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:dashboard:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		Client: client,
	}
}

// RateLimitMiddleware enforces config.Limit requests per window per key.
// Counting happens in Redis when a client is available and falls back to
// process memory otherwise, so a Redis outage never blocks the dashboard.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	store := &memoryLimiter{}
	var lastSweep time.Time
	var sweepMu sync.Mutex

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		sweepMu.Lock()
		if now.Sub(lastSweep) > 5*time.Minute {
			store.sweep(now)
			lastSweep = now
		}
		sweepMu.Unlock()

		var count int
		var resetAt time.Time

		var client *goredis.Client
		if config.Client != nil {
			client = config.Client()
		}
		if client != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, config.Window)
			if err != nil {
				logger.Log.Warn("Rate limit falling back to memory", "error", err)
				count, resetAt = store.hit(fullKey, config.Window, now)
			}
		} else {
			count, resetAt = store.hit(fullKey, config.Window, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			security.DefaultLogger().LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				c.GetString(string(domain.KeyRequestID)),
				c.Request.URL.Path,
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", rateLimitedCode)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	ttlSeconds := int(window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
