package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/shared/metrics"
	"hiremind-backend/internal/shared/server/respond"
)

const (
	DefaultRateLimitMessage = "Too many requests from this IP, please try again later."

	// sweep expired windows at most this often
	sweepEvery = time.Minute
)

type RateLimitConfig struct {
	Window  time.Duration
	Max     int
	Message string
	KeyFor  func(*gin.Context) string
	Limiter *RateLimiter
}

// RateLimiter counts requests per key in fixed windows. A window starts at the
// first request for a key and resets once it has fully elapsed.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*rateWindow
	now       func() time.Time
	lastSweep time.Time
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		now:     now,
	}
}

func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.Message == "" {
		cfg.Message = DefaultRateLimitMessage
	}
	if cfg.KeyFor == nil {
		cfg.KeyFor = func(c *gin.Context) string { return c.ClientIP() }
	}
	return func(c *gin.Context) {
		key := strings.TrimSpace(cfg.KeyFor(c))
		allowed, remaining, retryAfter := cfg.Limiter.Allow(key, cfg.Window, cfg.Max)
		if cfg.Max > 0 && cfg.Window > 0 {
			c.Header("RateLimit-Limit", strconv.Itoa(cfg.Max))
			c.Header("RateLimit-Remaining", strconv.Itoa(remaining))
		}
		if allowed {
			c.Next()
			return
		}
		retryAfterSeconds := int(math.Ceil(retryAfter.Seconds()))
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		metrics.IncRateLimited()
		respond.Error(c, http.StatusTooManyRequests, cfg.Message, "")
	}
}

// Allow records one request for key and reports whether it fits in the
// current window, how many requests remain, and when the window resets.
func (l *RateLimiter) Allow(key string, window time.Duration, max int) (bool, int, time.Duration) {
	if l == nil || window <= 0 || max <= 0 {
		return true, max, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now, window)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(window)}
		l.windows[key] = w
	}
	w.count++
	if w.count > max {
		return false, 0, w.resetAt.Sub(now)
	}
	return true, max - w.count, 0
}

// Len reports the number of tracked keys.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func (l *RateLimiter) sweep(now time.Time, window time.Duration) {
	interval := sweepEvery
	if window < interval {
		interval = window
	}
	if now.Sub(l.lastSweep) < interval {
		return
	}
	l.lastSweep = now
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}
