package api

import (
	"fmt"
	"time"
)

// StatusError represents a non-2xx HTTP response. Message holds the
// server-provided error message when the body carried one, otherwise
// the raw body text.
type StatusError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration // parsed from the Retry-After header on 429
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// NetworkError represents a failure below the HTTP layer: DNS, connect,
// TLS, or an exceeded deadline (Timeout true).
type NetworkError struct {
	Err     error
	URL     string
	Timeout bool
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError represents a 2xx response whose body could not be decoded
// into the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
