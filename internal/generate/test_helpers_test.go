package generate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/llm"
	"hiremind-backend/internal/shared/metrics"
)

var upstreamCountLine = regexp.MustCompile(`(?m)^upstream_duration_ms_count (\d+)$`)

// upstreamSampleCount scrapes the upstream latency sample count from /metrics.
func upstreamSampleCount(t *testing.T) uint64 {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", metrics.Handler())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	m := upstreamCountLine.FindStringSubmatch(resp.Body.String())
	if m == nil {
		t.Fatalf("upstream_duration_ms_count not found in:\n%s", resp.Body.String())
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		t.Fatalf("parse count: %v", err)
	}
	return n
}

type fakeLLM struct {
	mu       sync.Mutex
	calls    int
	requests []llm.ChatRequest
	ctxErrs  []error
	resp     llm.ChatResponse
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.requests = append(f.requests, req)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	return f.resp, f.err
}

func (f *fakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func okLLM(content string) *fakeLLM {
	return &fakeLLM{resp: llm.ChatResponse{
		Model:   "openai/gpt-oss-20b:free",
		Content: content,
		Usage:   []byte(`{"total_tokens":42}`),
	}}
}
