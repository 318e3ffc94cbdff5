package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// MemoryRateLimiter is a per-IP fixed-window limiter kept in process memory.
// It backs the API when Redis is not configured.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		clients: make(map[string]*clientInfo),
		now:     time.Now,
	}
}

// Allow counts one hit for ident and reports whether it is within maxRequests for the window.
func (l *MemoryRateLimiter) Allow(ident string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	ci, ok := l.clients[ident]
	if !ok || now.Sub(ci.start) > window {
		l.clients[ident] = &clientInfo{start: now, count: 1}
		return 1 <= maxRequests
	}

	ci.count++
	return ci.count <= maxRequests
}

// Sweep drops windows that ended before now.
func (l *MemoryRateLimiter) Sweep(window time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, ci := range l.clients {
		if now.Sub(ci.start) > window {
			delete(l.clients, ip)
		}
	}
}

// Middleware blocks clients that send more than maxRequests per window
func (l *MemoryRateLimiter) Middleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP(), maxRequests, window) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
