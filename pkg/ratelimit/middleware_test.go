package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mqbroker/internal/config"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := gin.New()
	r.Use(RateLimitMiddleware(ctx, RateLimitConfig{
		RPS:             0.001,
		Burst:           2,
		CleanupInterval: time.Minute,
		MaxAge:          time.Minute,
	}))
	r.GET("/getMessage", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/getMessage", nil))
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), "<Error>rate limit exceeded</Error>")
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestStore_Cleanup(t *testing.T) {
	s := &store{limiters: make(map[string]*Limiter), cfg: RateLimitConfig{RPS: 1, Burst: 1, MaxAge: time.Minute}}
	s.get("10.0.0.1")
	assert.Equal(t, 1, s.size())

	s.cleanup(time.Now())
	assert.Equal(t, 1, s.size())

	s.cleanup(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, s.size())
}

func TestFromConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig(), FromConfig(config.RateLimitConfig{}))

	got := FromConfig(config.RateLimitConfig{RPS: 5, Burst: 7, CleanupInterval: 30, MaxAge: 60})
	assert.Equal(t, 5.0, got.RPS)
	assert.Equal(t, 7, got.Burst)
	assert.Equal(t, 30*time.Second, got.CleanupInterval)
	assert.Equal(t, time.Minute, got.MaxAge)
}
