// Package errors defines the typed failure taxonomy for per-region price
// lookups. Every fetch ends in exactly one of: success, NetworkError,
// NotFoundError, MalformedError or NormalizationError. Callers use the
// IsXxx helpers to classify a failure even when it has been wrapped.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// NetworkError represents a transport-level failure: timeout, DNS error,
// connection reset or a non-2xx HTTP status.
type NetworkError struct {
	Message    string
	StatusCode int // 0 when the request never reached the server
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a NetworkError wrapping a transport failure.
func NewNetworkError(message string, err error) *NetworkError {
	return &NetworkError{Message: message, Err: err}
}

// NewHTTPStatusError creates a NetworkError for an unexpected HTTP status.
func NewHTTPStatusError(message string, statusCode int) *NetworkError {
	return &NetworkError{Message: message, StatusCode: statusCode}
}

// IsNetworkError reports whether err is a NetworkError (even when wrapped).
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return stdErrors.As(err, &netErr)
}
