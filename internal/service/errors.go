package service

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by the rate resolver when a parking has no
// usable configuration for the requested shift. It is deliberately distinct
// from repository.ErrNotFound: the parking exists, its pricing does not.
var ErrNotConfigured = errors.New("no active rate configured for this parking and shift")

// ValidationError carries the offending field so configure requests with
// several entries can point at the exact problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field string, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
