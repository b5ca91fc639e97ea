package service

import (
	"errors"
	"strings"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
)

// Service errors.
var (
	// ErrInvalidRequest is wrapped by every *ValidationError.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCalculationNotFound is returned when a history record does not exist.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrHistoryDisabled is returned by history lookups when history is off.
	ErrHistoryDisabled = errors.New("calculation history is disabled")
)

// ValidationError lists the request fields that prevent a calculation.
// Numeric values never cause one; they are coerced instead. Only structural
// problems such as an unknown container type do.
type ValidationError struct {
	Errors []dto.ValidationError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.String())
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrInvalidRequest.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// validator collects field errors.
type validator struct {
	errs []dto.ValidationError
}

func (v *validator) add(field, message string, value any) {
	v.errs = append(v.errs, dto.ValidationError{Field: field, Message: message, Value: value})
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errs}
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
