package generate

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"hiremind-backend/internal/llm"
	"hiremind-backend/internal/shared/metrics"
	"hiremind-backend/internal/shared/telemetry"
)

const (
	DefaultMaxTokens   = 1500
	DefaultTemperature = 0.7

	// upstream bodies logged on failure are cut to this many bytes
	maxLoggedBody = 2048
)

// Service validates generation requests and relays them to the model provider.
type Service struct {
	LLM         llm.Client
	Model       string
	MaxTokens   int
	Temperature float64
}

// NewService constructs a Service with the default sampling parameters.
func NewService(client llm.Client, model string) *Service {
	return &Service{
		LLM:         client,
		Model:       model,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// Validate checks required fields and the generation type.
func Validate(req Request) error {
	required := []string{req.Name, req.JobTitle, req.Skills, string(req.Tone), string(req.Type)}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Message: MsgMissingFields}
		}
	}
	if !req.Type.Valid() {
		return &ValidationError{Message: MsgInvalidType}
	}
	return nil
}

// Generate runs validate, prompt, upstream call and response mapping. The
// upstream call is made at most once and is not cancelled if ctx is.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	metrics.IncGenerateRequests()

	if err := Validate(req); err != nil {
		metrics.IncGenerateFailed("validation")
		return Result{}, err
	}
	if s.LLM == nil {
		metrics.IncGenerateFailed("configuration")
		return Result{}, ErrNotConfigured
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		metrics.IncGenerateFailed("validation")
		return Result{}, err
	}

	start := time.Now()
	resp, err := s.LLM.Chat(context.WithoutCancel(ctx), llm.ChatRequest{
		Model:       s.Model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	})
	metrics.ObserveUpstreamDurationMs(metrics.SinceMillis(start))
	if err != nil {
		return Result{}, s.mapUpstreamError(req, err)
	}

	model := resp.Model
	if model == "" {
		model = s.Model
	}
	metrics.IncGenerateSucceeded()
	return Result{
		Success: true,
		Content: resp.Content,
		Type:    req.Type,
		Metadata: Metadata{
			Model: model,
			Usage: resp.Usage,
		},
	}, nil
}

func (s *Service) mapUpstreamError(req Request, err error) error {
	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		metrics.IncGenerateFailed("configuration")
		return ErrNotConfigured
	case errors.As(err, &statusErr):
		metrics.IncGenerateFailed("upstream")
		metrics.IncUpstreamError(statusErr.StatusCode)
		telemetry.Error("upstream.error", map[string]any{
			"status":  statusErr.StatusCode,
			"message": statusErr.Message,
			"body":    truncate(string(statusErr.Body), maxLoggedBody),
			"type":    string(req.Type),
		})
		msg := statusErr.Message
		if msg == "" {
			msg = MsgUpstreamFallback
		}
		status := statusErr.StatusCode
		if status < 400 {
			// only error statuses are relayed as-is
			status = http.StatusBadGateway
		}
		return &UpstreamError{Status: status, Message: msg}
	case errors.Is(err, llm.ErrMalformedResponse):
		metrics.IncGenerateFailed("malformed")
		telemetry.Error("upstream.malformed", map[string]any{
			"error": err,
			"type":  string(req.Type),
		})
		return ErrMalformedResponse
	default:
		metrics.IncGenerateFailed("internal")
		return err
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
