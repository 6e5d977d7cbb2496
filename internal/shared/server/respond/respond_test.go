package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorOmitsEmptyMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "bad things", "")
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "bad things" {
		t.Fatalf("unexpected error %v", payload["error"])
	}
	if _, ok := payload["message"]; ok {
		t.Fatalf("expected message to be omitted")
	}
}

func TestErrorAbortsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.Use(func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, "Internal server error", "Something went wrong")
	})
	r.GET("/x", func(c *gin.Context) { reached = true })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if reached {
		t.Fatalf("expected handler chain to be aborted")
	}
	var payload ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Message != "Something went wrong" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}
