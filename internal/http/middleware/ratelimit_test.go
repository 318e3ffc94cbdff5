package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMemoryRateLimiterAllow(t *testing.T) {
	now := time.Date(2022, 4, 8, 12, 0, 0, 0, time.UTC)
	l := NewMemoryRateLimiter()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1", 2, time.Minute))
	assert.True(t, l.Allow("1.1.1.1", 2, time.Minute))
	assert.False(t, l.Allow("1.1.1.1", 2, time.Minute))
	assert.True(t, l.Allow("2.2.2.2", 2, time.Minute), "other clients are counted separately")

	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("1.1.1.1", 2, time.Minute), "new window")
}

func TestMemoryRateLimiterSweep(t *testing.T) {
	now := time.Date(2022, 4, 8, 12, 0, 0, 0, time.UTC)
	l := NewMemoryRateLimiter()
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1", 5, time.Minute)
	now = now.Add(2 * time.Minute)
	l.Allow("2.2.2.2", 5, time.Minute)
	l.Sweep(time.Minute)

	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "2.2.2.2")
}

func TestMetricsAndLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(), Metrics())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
