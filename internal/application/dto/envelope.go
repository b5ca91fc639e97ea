// Package dto contains the data transfer objects exchanged by the HTTP API
// and the CLI. Field names are snake_case on the wire.
package dto

import (
	"fmt"
	"time"
)

// Error codes used in APIError.Code.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeNotFound        = "NOT_FOUND"
	CodeHistoryDisabled = "HISTORY_DISABLED"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

// APIResponse is the envelope around every HTTP response body.
type APIResponse[T any] struct {
	Success bool          `json:"success"`
	Data    T             `json:"data,omitempty"`
	Error   *APIError     `json:"error,omitempty"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	// Code is one of the Code* constants.
	Code string `json:"code"`

	Message string `json:"message"`

	// ValidationErrors lists every rejected field, not only the first.
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
}

// ValidationError names one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`

	// Value echoes the rejected input when it is safe to show.
	Value any `json:"value,omitempty"`
}

func (v ValidationError) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ResponseMeta ties a response to the request that produced it.
type ResponseMeta struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// OK wraps a successful result.
func OK[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data}
}

// Fail builds an error envelope.
//
// Parameters:
//   - code: one of the Code* constants
//   - message: human-readable explanation
//
// Returns:
//   - APIResponse[T]: envelope with Success false
func Fail[T any](code, message string) APIResponse[T] {
	return APIResponse[T]{Error: &APIError{Code: code, Message: message}}
}

// Invalid builds a validation failure carrying every field error.
func Invalid[T any](errs []ValidationError) APIResponse[T] {
	return APIResponse[T]{Error: &APIError{
		Code:             CodeValidation,
		Message:          "Request validation failed",
		ValidationErrors: errs,
	}}
}

// Stamp records the request ID and the response time in UTC.
func (r APIResponse[T]) Stamp(requestID string, at time.Time) APIResponse[T] {
	r.Meta = &ResponseMeta{
		RequestID: requestID,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
	return r
}
