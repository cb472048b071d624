package onetimesecret

import (
	"errors"
	"fmt"
	"time"

	"github.com/onetimesecret/desktop-go/internal/api"
)

// Kind identifies the category of an Error. Kind values are stable
// machine-readable codes suitable for wire serialization; presentation
// layers branch on Kind, never on message content.
type Kind string

const (
	// KindAPI covers server responses outside the specifically mapped
	// status codes.
	KindAPI Kind = "API_ERROR"
	// KindAuthentication covers rejected credentials (HTTP 401) and
	// attempts to issue authenticated calls without an API key.
	KindAuthentication Kind = "AUTH_ERROR"
	// KindConfiguration covers invalid or missing client configuration,
	// including credential validation failures.
	KindConfiguration Kind = "CONFIG_ERROR"
	// KindNotFound covers secrets or metadata that do not exist or have
	// already been consumed (HTTP 404).
	KindNotFound Kind = "NOT_FOUND"
	// KindNetwork covers DNS, connect and TLS failures.
	KindNetwork Kind = "NETWORK_ERROR"
	// KindStorage covers secure-store failures in the vault.
	KindStorage Kind = "STORAGE_ERROR"
	// KindSerialization covers request and response encoding failures.
	KindSerialization Kind = "SERIALIZATION_ERROR"
	// KindInvalidInput covers rejected operation inputs, both
	// client-side preconditions and HTTP 400 responses.
	KindInvalidInput Kind = "VALIDATION_ERROR"
	// KindPermissionDenied covers HTTP 403 responses.
	KindPermissionDenied Kind = "PERMISSION_ERROR"
	// KindRateLimited covers HTTP 429 responses.
	KindRateLimited Kind = "RATE_LIMIT_EXCEEDED"
	// KindServiceUnavailable covers HTTP 5xx responses.
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"
	// KindTimeout covers requests that exceeded their deadline.
	KindTimeout Kind = "REQUEST_TIMEOUT"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAPIKey is returned when an authenticated client is built
	// from a stored configuration without an API key.
	ErrMissingAPIKey = errors.New("no API key configured")

	// ErrUnauthorized is returned when the server rejects the credentials.
	ErrUnauthorized = errors.New("invalid or expired credentials")

	// ErrPermissionDenied is returned when the operation is not permitted.
	ErrPermissionDenied = errors.New("operation not permitted")

	// ErrSecretNotFound is returned when a secret or metadata key does
	// not exist or the secret has already been consumed.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServiceUnavailable is returned on server-side failures.
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	// ErrTimeout is returned when a request exceeds its deadline.
	ErrTimeout = errors.New("request timed out")
)

// Error is the single error type produced by this package. Every failure
// path terminates in exactly one Error; no transport, storage or parse
// error crosses the package boundary unwrapped.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int           // HTTP status, 0 when the failure was not an HTTP response
	RetryAfter time.Duration // only set for KindRateLimited, 0 when the server gave no hint
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps each Kind onto its public sentinel so callers can use
// errors.Is without inspecting Kind directly.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindAuthentication:
		return target == ErrUnauthorized || target == ErrMissingAPIKey
	case KindPermissionDenied:
		return target == ErrPermissionDenied
	case KindNotFound:
		return target == ErrSecretNotFound
	case KindRateLimited:
		return target == ErrRateLimited
	case KindServiceUnavailable:
		return target == ErrServiceUnavailable
	case KindTimeout:
		return target == ErrTimeout
	}
	return false
}

// ErrorResponse is the wire-safe representation of an Error, shaped for
// the presentation layer: a stable code to branch on and a message to
// display.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// AsResponse converts any error into an ErrorResponse. Errors produced
// by this package keep their Kind as the code; anything else is reported
// as an API_ERROR.
func AsResponse(err error) ErrorResponse {
	var e *Error
	if errors.As(err, &e) {
		return ErrorResponse{Code: string(e.Kind), Message: e.Message}
	}
	return ErrorResponse{Code: string(KindAPI), Message: err.Error()}
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func invalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func storageErrorf(err error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: KindStorage, Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}

// wrapError converts internal transport errors into the public taxonomy.
// The status-code mapping is total and independent of response body
// content for the mapped codes.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return wrapStatusError(statusErr)
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout {
			return &Error{
				Kind:    KindTimeout,
				Message: "request timed out, check your connection and try again",
				Err:     netErr,
			}
		}
		return &Error{
			Kind:    KindNetwork,
			Message: "connection failed, check your internet connection",
			Err:     netErr,
		}
	}

	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return &Error{
			Kind:    KindSerialization,
			Message: fmt.Sprintf("unexpected response from server: %v", decodeErr.Err),
			Err:     decodeErr,
		}
	}

	return &Error{Kind: KindAPI, Message: err.Error(), Err: err}
}

func wrapStatusError(statusErr *api.StatusError) *Error {
	code := statusErr.StatusCode
	out := &Error{StatusCode: code, Err: statusErr}

	switch {
	case code == 400:
		out.Kind = KindInvalidInput
		out.Message = statusErr.Message
		if out.Message == "" {
			out.Message = "invalid request"
		}
	case code == 401:
		out.Kind = KindAuthentication
		out.Message = "invalid credentials, check your API key"
	case code == 403:
		out.Kind = KindPermissionDenied
		out.Message = statusErr.Message
		if out.Message == "" {
			out.Message = "operation not permitted"
		}
	case code == 404:
		out.Kind = KindNotFound
		out.Message = "secret not found"
	case code == 429:
		out.Kind = KindRateLimited
		out.Message = "rate limit exceeded, wait before trying again"
		out.RetryAfter = statusErr.RetryAfter
	case code >= 500 && code <= 599:
		out.Kind = KindServiceUnavailable
		out.Message = "service temporarily unavailable, try again later"
	default:
		out.Kind = KindAPI
		out.Message = fmt.Sprintf("HTTP %d: %s", code, statusErr.Message)
	}
	return out
}
