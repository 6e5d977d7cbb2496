package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newLimitedRouter(t *testing.T, clock *fakeClock, max int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	captureLogs(t)
	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Window:  15 * time.Minute,
		Max:     max,
		Limiter: NewRateLimiter(clock.Now),
	}))
	r.POST("/api/generate", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	req.RemoteAddr = ip + ":1234"
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitRejectsOverCeiling(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	r := newLimitedRouter(t, clock, 2)

	for i := 0; i < 2; i++ {
		if resp := doFrom(r, "10.0.0.1"); resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	resp := doFrom(r, "10.0.0.1")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") != "900" {
		t.Fatalf("expected Retry-After 900, got %q", resp.Header().Get("Retry-After"))
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != DefaultRateLimitMessage {
		t.Fatalf("unexpected error message %v", payload["error"])
	}
}

func TestRateLimitIsPerClientIP(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	r := newLimitedRouter(t, clock, 1)

	if resp := doFrom(r, "10.0.0.1"); resp.Code != http.StatusOK {
		t.Fatalf("expected first client 200, got %d", resp.Code)
	}
	if resp := doFrom(r, "10.0.0.2"); resp.Code != http.StatusOK {
		t.Fatalf("expected second client 200, got %d", resp.Code)
	}
	if resp := doFrom(r, "10.0.0.1"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected first client limited, got %d", resp.Code)
	}
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	r := newLimitedRouter(t, clock, 1)

	if resp := doFrom(r, "10.0.0.1"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	clock.now = clock.now.Add(14 * time.Minute)
	if resp := doFrom(r, "10.0.0.1"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 inside window, got %d", resp.Code)
	}
	clock.now = clock.now.Add(time.Minute)
	if resp := doFrom(r, "10.0.0.1"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 after window reset, got %d", resp.Code)
	}
}

func TestRateLimiterSweepsExpiredWindows(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	l := NewRateLimiter(clock.Now)

	l.Allow("a", time.Minute, 5)
	l.Allow("b", time.Minute, 5)
	if l.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", l.Len())
	}
	clock.now = clock.now.Add(2 * time.Minute)
	l.Allow("c", time.Minute, 5)
	if l.Len() != 1 {
		t.Fatalf("expected expired keys to be swept, got %d", l.Len())
	}
}

func TestRateLimiterDisabledWhenUnconfigured(t *testing.T) {
	l := NewRateLimiter(nil)
	for i := 0; i < 10; i++ {
		if ok, _, _ := l.Allow("a", 0, 0); !ok {
			t.Fatalf("expected unlimited when window/max unset")
		}
	}
}
