package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Client abstracts chat-completion providers.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a provider-neutral chat completion request.
type ChatRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// ChatResponse carries the generated text and the provider's accounting data.
// Usage is passed through untouched.
type ChatResponse struct {
	Model   string
	Content string
	Usage   json.RawMessage
}

var (
	// ErrNotConfigured is returned when no provider credential is available.
	ErrNotConfigured = errors.New("llm client not configured")

	// ErrMalformedResponse is returned when a 2xx provider response lacks the generated text.
	ErrMalformedResponse = errors.New("malformed llm response")
)

// StatusError reports a non-2xx provider response.
type StatusError struct {
	StatusCode int
	// Message is the provider supplied error message, if any.
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("llm http status %d", e.StatusCode)
	}
	return fmt.Sprintf("llm http status %d: %s", e.StatusCode, e.Message)
}
