package errors

import (
	stdErrors "errors"
	"fmt"
)

// NormalizationError means a raw price entry could not be converted into a
// canonical amount and currency.
type NormalizationError struct {
	Input  string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize price %q: %s", e.Input, e.Reason)
}

// NewNormalizationError creates a NormalizationError for a raw input value.
func NewNormalizationError(input, reason string) *NormalizationError {
	return &NormalizationError{Input: input, Reason: reason}
}

// IsNormalizationError reports whether err is a NormalizationError (even when wrapped).
func IsNormalizationError(err error) bool {
	var normErr *NormalizationError
	return stdErrors.As(err, &normErr)
}
