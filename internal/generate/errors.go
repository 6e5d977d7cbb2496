package generate

import (
	"errors"
	"fmt"
)

const (
	MsgMissingFields    = "Missing required fields: name, jobTitle, skills, tone, and type are required"
	MsgInvalidType      = `Invalid type. Must be either "resume" or "cover-letter"`
	MsgInvalidJSON      = "Invalid JSON body"
	MsgTooLarge         = "Request entity too large"
	MsgNotConfigured    = "OpenRouter API key not configured"
	MsgUpstreamFallback = "Failed to generate content"
	MsgMalformed        = "Invalid response from AI service"
	MsgInternal         = "Internal server error"
	MsgInternalHidden   = "Something went wrong"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConfigured is returned before any network call when no credential is set.
	ErrNotConfigured = errors.New(MsgNotConfigured)
	// ErrMalformedResponse means the provider answered 2xx without usable content.
	ErrMalformedResponse = errors.New(MsgMalformed)
)

// ValidationError describes a rejected request. It matches ErrInvalidInput.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// UpstreamError is a non-2xx provider answer; Status is relayed to the caller.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}
