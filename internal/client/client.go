package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hiremind-backend/internal/generate"
)

const (
	DefaultBaseURL = "http://localhost:5000"

	maxResponseBody = 10 << 20
)

// Client talks to the relay's HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New constructs a Client. The HTTP client has no timeout, matching the
// relay, which waits for the model as long as it takes.
func New(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: baseURL, HTTPClient: &http.Client{}}
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

// Generate posts req to /api/generate.
func (c *Client) Generate(ctx context.Context, req generate.Request) (generate.Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return generate.Result{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return generate.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return generate.Result{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return generate.Result{}, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &envelope)
		return generate.Result{}, &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	var result generate.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return generate.Result{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if !result.Success || result.Content == "" {
		return generate.Result{}, ErrInvalidResponse
	}
	if result.Type == "" {
		result.Type = req.Type
	}
	return result, nil
}
