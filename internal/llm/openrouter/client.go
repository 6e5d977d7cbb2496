package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hiremind-backend/internal/llm"
)

const (
	DefaultURL = "https://openrouter.ai/api/v1/chat/completions"

	// upstream error bodies beyond this are truncated before parsing
	maxErrorBody = 64 << 10
)

// Options configures a Client.
type Options struct {
	APIKey  string
	URL     string
	Referer string
	Title   string
	// HTTPClient defaults to a client without a timeout; a call runs until
	// the transport finishes or fails.
	HTTPClient *http.Client
}

// Client implements llm.Client against the OpenRouter chat completions API.
type Client struct {
	apiKey     string
	url        string
	referer    string
	title      string
	httpClient *http.Client
}

// NewClient constructs a new OpenRouter client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = DefaultURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		url:        url,
		referer:    opts.Referer,
		title:      opts.Title,
		httpClient: httpClient,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message *struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage json.RawMessage `json:"usage,omitempty"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat issues exactly one chat completion request.
func (c *Client) Chat(ctx context.Context, in llm.ChatRequest) (llm.ChatResponse, error) {
	temp := in.Temperature
	reqBody := chatRequest{
		Model:       in.Model,
		Messages:    in.Messages,
		MaxTokens:   in.MaxTokens,
		Temperature: &temp,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return llm.ChatResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return llm.ChatResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return llm.ChatResponse{}, fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return llm.ChatResponse{}, &llm.StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			Body:       body,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.ChatResponse{}, fmt.Errorf("openrouter read body: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return llm.ChatResponse{}, fmt.Errorf("%w: parse: %v", llm.ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil {
		return llm.ChatResponse{}, fmt.Errorf("%w: missing choices[0].message", llm.ErrMalformedResponse)
	}
	content := parsed.Choices[0].Message.Content
	if content == nil || strings.TrimSpace(*content) == "" {
		return llm.ChatResponse{}, fmt.Errorf("%w: empty content", llm.ErrMalformedResponse)
	}

	return llm.ChatResponse{
		Model:   parsed.Model,
		Content: *content,
		Usage:   parsed.Usage,
	}, nil
}

func errorMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Error == nil {
		return ""
	}
	return strings.TrimSpace(parsed.Error.Message)
}

var _ llm.Client = (*Client)(nil)
