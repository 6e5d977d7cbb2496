package client

import (
	"errors"
	"fmt"
)

var (
	ErrNotReady = errors.New("form is missing required fields")
	ErrBusy     = errors.New("a generation is already in progress")
	// ErrInvalidResponse is a 2xx answer without success and content.
	ErrInvalidResponse = errors.New("invalid response format from server")
)

// APIError is a non-2xx answer from the relay.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return e.Message
}

// NetworkError wraps a failure to reach the relay at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "fetch failed: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }
