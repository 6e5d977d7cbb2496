package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/generate"
	"hiremind-backend/internal/llm/openrouter"
	"hiremind-backend/internal/shared/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "5000",
		Env:             "production",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Model:           config.DefaultModel,
		AppTitle:        "HireMind",
		RateLimitWindow: 15 * time.Minute,
		RateLimitMax:    100,
		BodyLimitBytes:  config.DefaultBodyLimit,
	}
}

func newTestServer(t *testing.T, cfg config.Config, upstream http.HandlerFunc) (*gin.Engine, *int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var calls int32
	var handler *generate.Handler
	if upstream != nil {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			upstream(w, r)
		}))
		t.Cleanup(srv.Close)
		client, err := openrouter.NewClient(openrouter.Options{APIKey: "k", URL: srv.URL, Title: "HireMind"})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		handler = generate.NewHandler(generate.NewService(client, cfg.Model), cfg.IsDev())
	} else {
		handler = generate.NewHandler(generate.NewService(nil, cfg.Model), cfg.IsDev())
	}
	return NewRouter(RouterDeps{Config: cfg, GenerateHandler: handler}), &calls
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode %q: %v", resp.Body.String(), err)
	}
	return payload
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t, testConfig(), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	payload := decode(t, resp)
	if payload["status"] != "OK" || payload["message"] != "HireMind Backend is running!" {
		t.Fatalf("unexpected health payload %v", payload)
	}
	if resp.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestUnknownRoutes(t *testing.T) {
	r, _ := newTestServer(t, testConfig(), nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/api/generate"},
		{http.MethodDelete, "/health"},
	} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(tc.method, tc.path, nil))
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, resp.Code)
		}
		if payload := decode(t, resp); payload["error"] != "Route not found" {
			t.Fatalf("unexpected 404 payload %v", payload)
		}
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	var gotPrompt string
	r, calls := newTestServer(t, testConfig(), func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		if len(body.Messages) == 1 {
			gotPrompt = body.Messages[0].Content
		}
		_, _ = w.Write([]byte(`{"model":"openai/gpt-oss-20b:free","choices":[{"message":{"content":"Dear Hiring Manager"}}],"usage":{"total_tokens":7}}`))
	})

	body := `{"name":"Jane","jobTitle":"SRE","skills":"Go","tone":"Minimalist","type":"cover-letter"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	payload := decode(t, resp)
	if payload["content"] != "Dear Hiring Manager" || payload["type"] != "cover-letter" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", *calls)
	}
	if !strings.Contains(gotPrompt, "Uses minimalist tone throughout") {
		t.Fatalf("unexpected prompt %q", gotPrompt)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("expected CORS header for allowed origin")
	}
}

func TestGenerateUpstreamStatusRelayed(t *testing.T) {
	r, calls := newTestServer(t, testConfig(), func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Insufficient credits"}}`))
	})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(`{"name":"a","jobTitle":"b","skills":"c","tone":"Formal","type":"resume"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", resp.Code)
	}
	if payload := decode(t, resp); payload["error"] != "Insufficient credits" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", *calls)
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	r, _ := newTestServer(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(`{"name":"a","jobTitle":"b","skills":"c","tone":"Formal","type":"resume"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if payload := decode(t, resp); payload["error"] != "OpenRouter API key not configured" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestRateLimitPerIP(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 3
	r, _ := newTestServer(t, cfg, nil)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = ip + ":4321"
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	for i := 0; i < 3; i++ {
		if resp := send("10.0.0.1"); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.Code)
		}
	}
	resp := send("10.0.0.1")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if payload := decode(t, resp); payload["error"] != "Too many requests from this IP, please try again later." {
		t.Fatalf("unexpected 429 payload %v", payload)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if other := send("10.0.0.2"); other.Code != http.StatusOK {
		t.Fatalf("other IPs must not share the window, got %d", other.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestServer(t, testConfig(), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "generate_requests_total") {
		t.Fatalf("expected generate counters in metrics output")
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":5000", "8080": ":8080", ":9000": ":9000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
