// Package sqlstore provides gorm-backed implementations of repository interfaces.
// The same code runs against PostgreSQL in production and SQLite for
// single-node deployments and tests.
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hapkiduki/loadplan-go/internal/domain/entity"
	"github.com/hapkiduki/loadplan-go/internal/domain/repository"
)

// calculationRow is the table layout of a history record.
type calculationRow struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Kind      string         `gorm:"size:32;not null;index"`
	Label     string         `gorm:"size:255;index"`
	Outcome   string         `gorm:"size:16;not null"`
	Request   datatypes.JSON `gorm:"not null"`
	Result    datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null;index"`
}

// TableName overrides the gorm default.
func (calculationRow) TableName() string {
	return "calculations"
}

func toRow(c *entity.Calculation) calculationRow {
	return calculationRow{
		ID:        c.ID.String(),
		Kind:      string(c.Kind),
		Label:     c.Label,
		Outcome:   string(c.Outcome),
		Request:   datatypes.JSON(c.Request),
		Result:    datatypes.JSON(c.Result),
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func (r calculationRow) toEntity() (*entity.Calculation, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt calculation id %q: %w", r.ID, err)
	}
	return &entity.Calculation{
		ID:        id,
		Kind:      entity.CalculationKind(r.Kind),
		Label:     r.Label,
		Outcome:   entity.CalculationOutcome(r.Outcome),
		Request:   json.RawMessage(r.Request),
		Result:    json.RawMessage(r.Result),
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

// CalculationRepository stores calculation history in a SQL database.
type CalculationRepository struct {
	db *gorm.DB
}

// NewCalculationRepository creates a repository on an open connection.
// Call Migrate once before first use.
func NewCalculationRepository(db *gorm.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

// Migrate creates or updates the history table.
func (r *CalculationRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&calculationRow{}); err != nil {
		return fmt.Errorf("failed to migrate calculations table: %w", err)
	}
	return nil
}

// Create implements repository.CalculationRepository.
func (r *CalculationRepository) Create(ctx context.Context, calc *entity.Calculation) error {
	if calc == nil {
		return repository.ErrInvalidInput
	}
	row := toRow(calc)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&calculationRow{}).Where("id = ?", row.ID).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to check calculation id: %w", err)
		}
		if n > 0 {
			return repository.ErrDuplicateID
		}
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return repository.ErrDuplicateID
			}
			return fmt.Errorf("failed to insert calculation: %w", err)
		}
		return nil
	})
}

// GetByID implements repository.CalculationRepository.
func (r *CalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Calculation, error) {
	var row calculationRow
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCalculationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load calculation: %w", err)
	}
	return row.toEntity()
}

// List implements repository.CalculationRepository.
func (r *CalculationRepository) List(ctx context.Context, filter repository.CalculationFilter) ([]*entity.Calculation, error) {
	q := applyFilter(r.db.WithContext(ctx).Model(&calculationRow{}), filter).
		Order("created_at DESC").
		Order("id DESC")
	limit := filter.Limit
	if limit <= 0 && filter.Offset > 0 {
		// SQLite rejects OFFSET without LIMIT.
		limit = math.MaxInt32
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var rows []calculationRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}

	out := make([]*entity.Calculation, 0, len(rows))
	for _, row := range rows {
		c, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Count implements repository.CalculationRepository.
func (r *CalculationRepository) Count(ctx context.Context, filter repository.CalculationFilter) (int64, error) {
	var n int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&calculationRow{}), filter).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count calculations: %w", err)
	}
	return n, nil
}

// Delete implements repository.CalculationRepository.
func (r *CalculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&calculationRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete calculation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrCalculationNotFound
	}
	return nil
}

// Ping implements repository.CalculationRepository.
func (r *CalculationRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrConnectionFailed, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrConnectionFailed, err)
	}
	return nil
}

func applyFilter(q *gorm.DB, f repository.CalculationFilter) *gorm.DB {
	if f.Kind != nil {
		q = q.Where("kind = ?", string(*f.Kind))
	}
	if f.Outcome != nil {
		q = q.Where("outcome = ?", string(*f.Outcome))
	}
	if f.Label != "" {
		q = q.Where("label = ?", f.Label)
	}
	return q
}
