package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/loadplan-go/internal/domain/entity"
	"github.com/hapkiduki/loadplan-go/internal/domain/repository"
)

func newCalc(t *testing.T, kind entity.CalculationKind, at time.Time) *entity.Calculation {
	t.Helper()
	c, err := entity.NewCalculation(kind, "", entity.OutcomeComputed, map[string]int{"n": 1}, map[string]int{"n": 2})
	require.NoError(t, err)
	c.CreatedAt = at
	return c
}

func TestCalculationRepository_CRUD(t *testing.T) {
	repo := NewCalculationRepository(10)
	ctx := context.Background()

	calc := newCalc(t, entity.KindCenterOfGravity, time.Now())
	require.NoError(t, repo.Create(ctx, calc))
	assert.ErrorIs(t, repo.Create(ctx, calc), repository.ErrDuplicateID)
	assert.ErrorIs(t, repo.Create(ctx, nil), repository.ErrInvalidInput)

	got, err := repo.GetByID(ctx, calc.ID)
	require.NoError(t, err)
	assert.Equal(t, calc.ID, got.ID)

	// Returned records are copies.
	got.Result[0] = 'X'
	again, err := repo.GetByID(ctx, calc.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(again.Result))

	require.NoError(t, repo.Delete(ctx, calc.ID))
	assert.ErrorIs(t, repo.Delete(ctx, calc.ID), repository.ErrCalculationNotFound)
	_, err = repo.GetByID(ctx, calc.ID)
	assert.True(t, repository.IsNotFoundError(err))
}

func TestCalculationRepository_EvictsOldest(t *testing.T) {
	repo := NewCalculationRepository(2)
	ctx := context.Background()
	base := time.Now()

	a := newCalc(t, entity.KindRestraint, base)
	b := newCalc(t, entity.KindRestraint, base.Add(time.Second))
	c := newCalc(t, entity.KindRestraint, base.Add(2*time.Second))
	for _, calc := range []*entity.Calculation{a, b, c} {
		require.NoError(t, repo.Create(ctx, calc))
	}

	_, err := repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrCalculationNotFound)

	n, err := repo.Count(ctx, repository.CalculationFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCalculationRepository_ListFilterAndPaging(t *testing.T) {
	repo := NewCalculationRepository(0)
	ctx := context.Background()
	base := time.Now()

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		kind := entity.KindRestraint
		if i%2 == 0 {
			kind = entity.KindContainerFit
		}
		c := newCalc(t, kind, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	all, err := repo.List(ctx, repository.CalculationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, ids[4], all[0].ID)

	kind := entity.KindContainerFit
	fits, err := repo.List(ctx, repository.CalculationFilter{Kind: &kind})
	require.NoError(t, err)
	assert.Len(t, fits, 3)

	page, err := repo.List(ctx, repository.CalculationFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)

	empty, err := repo.List(ctx, repository.CalculationFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCalculationRepository_Concurrent(t *testing.T) {
	repo := NewCalculationRepository(50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := entity.NewCalculation(entity.KindRestraint, "", entity.OutcomePass, 1, 2)
			if err != nil {
				return
			}
			_ = repo.Create(ctx, c)
			_, _ = repo.List(ctx, repository.CalculationFilter{Limit: 5})
		}()
	}
	wg.Wait()

	n, err := repo.Count(ctx, repository.CalculationFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)
}

func TestNoopCalculationRepository(t *testing.T) {
	var repo repository.CalculationRepository = NoopCalculationRepository{}
	ctx := context.Background()

	assert.ErrorIs(t, repo.Create(ctx, &entity.Calculation{}), repository.ErrHistoryDisabled)
	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrHistoryDisabled)
	_, err = repo.List(ctx, repository.CalculationFilter{})
	assert.ErrorIs(t, err, repository.ErrHistoryDisabled)
	_, err = repo.Count(ctx, repository.CalculationFilter{})
	assert.ErrorIs(t, err, repository.ErrHistoryDisabled)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), repository.ErrHistoryDisabled)
	assert.NoError(t, repo.Ping(ctx))
}
