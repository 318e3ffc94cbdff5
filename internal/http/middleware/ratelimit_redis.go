package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"todo_api/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter backed by Redis INCR/EXPIRE.
// Without a reachable Redis it falls back to the in-memory limiter.
type RateLimiter struct {
	client   *redis.Client
	fallback *MemoryRateLimiter
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter connects to Redis at addr. An empty addr or a failed ping leaves
// the limiter in memory-only mode so the server stays available.
func NewRateLimiter(addr, password string, db int) *RateLimiter {
	rl := &RateLimiter{fallback: NewMemoryRateLimiter(), stop: make(chan struct{})}
	if addr == "" {
		return rl
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiter", "addr", addr, "error", err)
		_ = client.Close()
		return rl
	}

	logger.Info("redis rate limiter connected", "addr", addr)
	rl.client = client
	return rl
}

// Redis reports whether the limiter is backed by Redis.
func (l *RateLimiter) Redis() bool {
	return l.client != nil
}

// Ping checks the Redis connection; it is a no-op in memory-only mode.
func (l *RateLimiter) Ping(ctx context.Context) error {
	if l.client == nil {
		return nil
	}
	return l.client.Ping(ctx).Err()
}

// StartCleanup periodically forgets expired in-memory windows until Close.
func (l *RateLimiter) StartCleanup(window time.Duration) {
	if l.client != nil {
		return
	}
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.fallback.Sweep(window)
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *RateLimiter) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}

// Middleware limits each client IP to maxRequests per window.
// key format: rl:<window_seconds>:<identifier>
func (l *RateLimiter) Middleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	if l.client == nil {
		return l.fallback.Middleware(maxRequests, window)
	}

	return func(c *gin.Context) {
		ident := c.ClientIP()
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident
		ctx := c.Request.Context()

		val, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			// on Redis error, fail-open (allow) but set header
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			l.client.Expire(ctx, key, window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
