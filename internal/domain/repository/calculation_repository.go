// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hapkiduki/loadplan-go/internal/domain/entity"
)

// CalculationFilter contains criteria for listing history records.
type CalculationFilter struct {
	// Kind filters records by calculator.
	Kind *entity.CalculationKind

	// Outcome filters records by outcome.
	Outcome *entity.CalculationOutcome

	// Label filters records whose label matches exactly.
	Label string

	// Limit specifies the maximum number of results (0 means no limit)
	Limit int

	// Offset specifies the starting position for pagination
	Offset int
}

// Matches reports whether c satisfies the filter criteria, ignoring
// pagination. Implementations that filter in memory share this.
func (f CalculationFilter) Matches(c *entity.Calculation) bool {
	if f.Kind != nil && c.Kind != *f.Kind {
		return false
	}
	if f.Outcome != nil && c.Outcome != *f.Outcome {
		return false
	}
	if f.Label != "" && c.Label != f.Label {
		return false
	}
	return true
}

// CalculationRepository defines the interface for calculation history persistence.
// Records are immutable once created; there is no update operation.
//
// Example usage:
//
//	repo := memory.NewCalculationRepository(500)
//	calc, err := repo.GetByID(ctx, id)
type CalculationRepository interface {
	// Create persists a new record.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - calc: The record to store
	//
	// Returns:
	//   - error: ErrInvalidInput for a nil record, ErrDuplicateID if the ID exists
	Create(ctx context.Context, calc *entity.Calculation) error

	// GetByID retrieves a record by its unique identifier.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: The record's UUID
	//
	// Returns:
	//   - *entity.Calculation: The retrieved record
	//   - error: ErrCalculationNotFound if the record doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Calculation, error)

	// List retrieves records matching the filter, newest first.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - filter: Criteria to filter records
	//
	// Returns:
	//   - []*entity.Calculation: matching records
	//   - error: any error encountered during retrieval
	List(ctx context.Context, filter CalculationFilter) ([]*entity.Calculation, error)

	// Count returns the number of records matching the filter, ignoring pagination.
	Count(ctx context.Context, filter CalculationFilter) (int64, error)

	// Delete removes a record.
	//
	// Returns:
	//   - error: ErrCalculationNotFound if the record doesn't exist
	Delete(ctx context.Context, id uuid.UUID) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
