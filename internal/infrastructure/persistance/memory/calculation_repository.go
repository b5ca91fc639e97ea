// Package memory provides in-process implementations of repository interfaces.
// History kept here is lost on restart; it suits single-user and CLI use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hapkiduki/loadplan-go/internal/domain/entity"
	"github.com/hapkiduki/loadplan-go/internal/domain/repository"
)

// DefaultMaxEntries bounds the history when no limit is configured.
const DefaultMaxEntries = 1000

// CalculationRepository keeps the most recent calculations in memory.
// When full, the oldest record is evicted.
type CalculationRepository struct {
	mu         sync.RWMutex
	maxEntries int
	byID       map[uuid.UUID]*entity.Calculation
	order      []uuid.UUID // insertion order, oldest first
}

// NewCalculationRepository creates an empty repository holding at most
// maxEntries records (DefaultMaxEntries when not positive).
func NewCalculationRepository(maxEntries int) *CalculationRepository {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &CalculationRepository{
		maxEntries: maxEntries,
		byID:       make(map[uuid.UUID]*entity.Calculation),
	}
}

// Create implements repository.CalculationRepository.
func (r *CalculationRepository) Create(ctx context.Context, calc *entity.Calculation) error {
	if calc == nil {
		return repository.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[calc.ID]; exists {
		return repository.ErrDuplicateID
	}
	for len(r.order) >= r.maxEntries {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.byID, oldest)
	}

	r.byID[calc.ID] = clone(calc)
	r.order = append(r.order, calc.ID)
	return nil
}

// GetByID implements repository.CalculationRepository.
func (r *CalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrCalculationNotFound
	}
	return clone(c), nil
}

// List implements repository.CalculationRepository.
func (r *CalculationRepository) List(ctx context.Context, filter repository.CalculationFilter) ([]*entity.Calculation, error) {
	matched := r.matching(filter)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*entity.Calculation{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Count implements repository.CalculationRepository.
func (r *CalculationRepository) Count(ctx context.Context, filter repository.CalculationFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

// Delete implements repository.CalculationRepository.
func (r *CalculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repository.ErrCalculationNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping implements repository.CalculationRepository.
func (r *CalculationRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// matching returns copies of the records that satisfy the filter, newest first.
func (r *CalculationRepository) matching(filter repository.CalculationFilter) []*entity.Calculation {
	r.mu.RLock()
	out := make([]*entity.Calculation, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		c := r.byID[r.order[i]]
		if filter.Matches(c) {
			out = append(out, clone(c))
		}
	}
	r.mu.RUnlock()

	// Insertion order already approximates time order; a stable sort keeps
	// it for records created in the same instant.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func clone(c *entity.Calculation) *entity.Calculation {
	cp := *c
	cp.Request = append([]byte(nil), c.Request...)
	cp.Result = append([]byte(nil), c.Result...)
	return &cp
}

// NoopCalculationRepository is used when history is disabled. Every
// operation except Ping reports ErrHistoryDisabled.
type NoopCalculationRepository struct{}

// Create discards the record and reports ErrHistoryDisabled so callers do
// not hand out an ID that cannot be fetched.
func (NoopCalculationRepository) Create(context.Context, *entity.Calculation) error {
	return repository.ErrHistoryDisabled
}

// GetByID always fails with ErrHistoryDisabled.
func (NoopCalculationRepository) GetByID(context.Context, uuid.UUID) (*entity.Calculation, error) {
	return nil, repository.ErrHistoryDisabled
}

// List always fails with ErrHistoryDisabled.
func (NoopCalculationRepository) List(context.Context, repository.CalculationFilter) ([]*entity.Calculation, error) {
	return nil, repository.ErrHistoryDisabled
}

// Count always fails with ErrHistoryDisabled.
func (NoopCalculationRepository) Count(context.Context, repository.CalculationFilter) (int64, error) {
	return 0, repository.ErrHistoryDisabled
}

// Delete always fails with ErrHistoryDisabled.
func (NoopCalculationRepository) Delete(context.Context, uuid.UUID) error {
	return repository.ErrHistoryDisabled
}

// Ping always succeeds.
func (NoopCalculationRepository) Ping(context.Context) error { return nil }

var (
	_ repository.CalculationRepository = (*CalculationRepository)(nil)
	_ repository.CalculationRepository = NoopCalculationRepository{}
)
