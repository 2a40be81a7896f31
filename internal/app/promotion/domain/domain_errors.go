package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Contract violations
	ErrInvalidVariant  = errors.New("promotion variant is missing or unknown")
	ErrVariantMismatch = errors.New("promotion variant does not match the requested calculation")

	// Promotion errors
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrInvalidDate       = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidStatus     = errors.New("status must be aktif or nonaktif")
	ErrStatusUnchanged   = errors.New("promotion already has the requested status")
	ErrEmptyPromotionID  = errors.New("promotion id cannot be empty")
	ErrConcurrentUpdate  = errors.New("promotion was modified concurrently")
	ErrInvalidPageToken  = errors.New("page token is invalid")
	ErrInvalidPhase      = errors.New("phase must be akan_datang, berlangsung, berakhir or nonaktif")

	// Product errors
	ErrProductNotFound = errors.New("product not found")
)

// ValidationFailedError is returned by write use cases when a draft breaks
// business rules. The violations are data for the caller to render.
type ValidationFailedError struct {
	Errors []ValidationError
}

func (e *ValidationFailedError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("promotion is invalid: %s %s", e.Errors[0].Field, e.Errors[0].Code)
	}
	return fmt.Sprintf("promotion is invalid: %d violations", len(e.Errors))
}

// AsValidationFailed unwraps err into a *ValidationFailedError when possible.
func AsValidationFailed(err error) (*ValidationFailedError, bool) {
	var vf *ValidationFailedError
	if errors.As(err, &vf) {
		return vf, true
	}
	return nil, false
}
