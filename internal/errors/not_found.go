package errors

import (
	stdErrors "errors"
	"fmt"
)

// NotFoundError means the response was well-formed but carried no price
// data, typically because the product is not sold in that region.
type NotFoundError struct {
	ProductID string
	Region    string
}

func (e *NotFoundError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("no price data for product %s in region %s", e.ProductID, e.Region)
	}
	return fmt.Sprintf("no price data for product %s", e.ProductID)
}

// NewNotFoundError creates a NotFoundError for a (product, region) pair.
func NewNotFoundError(productID, region string) *NotFoundError {
	return &NotFoundError{ProductID: productID, Region: region}
}

// IsNotFoundError reports whether err is a NotFoundError (even when wrapped).
func IsNotFoundError(err error) bool {
	var nfErr *NotFoundError
	return stdErrors.As(err, &nfErr)
}
