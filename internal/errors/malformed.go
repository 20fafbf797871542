package errors

import (
	stdErrors "errors"
	"fmt"
)

// MalformedError means the response was present but had an unexpected
// shape, e.g. an unparsable body or a non-numeric price field.
type MalformedError struct {
	Message string
	Err     error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// NewMalformedError creates a MalformedError with an optional cause.
func NewMalformedError(message string, err error) *MalformedError {
	return &MalformedError{Message: message, Err: err}
}

// IsMalformedError reports whether err is a MalformedError (even when wrapped).
func IsMalformedError(err error) bool {
	var malErr *MalformedError
	return stdErrors.As(err, &malErr)
}
