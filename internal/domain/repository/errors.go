// Package repository contains the repository interfaces and related errors.
package repository

import "errors"

// Repository errors define common error conditions across all repositories.
// These errors are used to communicate specific failure conditions
// from the data access layer to the application layer.

var (
	// ErrCalculationNotFound is returned when a history record cannot be found by ID.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrDuplicateID is returned when trying to store a record whose ID
	// already exists.
	ErrDuplicateID = errors.New("calculation ID already exists")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrInvalidInput is returned when repository receives invalid input.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrHistoryDisabled is returned by the no-op store for lookups.
	ErrHistoryDisabled = errors.New("calculation history is disabled")
)

// IsNotFoundError checks if the error is a not found error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a missing record
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCalculationNotFound)
}

// IsDuplicateError checks if the error is a duplicate entry error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a duplicate key violation
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}
