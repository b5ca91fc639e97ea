// Package persistance selects and opens the calculation history store.
package persistance

import (
	"context"
	"fmt"

	"github.com/hapkiduki/loadplan-go/internal/domain/repository"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/config"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/database"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/persistance/memory"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/persistance/sqlstore"
)

// OpenHistory returns the history store configured by cfg and a function
// that releases it.
//
// Parameters:
//   - ctx: bounds the connection check and migration
//   - cfg: history section of the configuration
//
// Returns:
//   - repository.CalculationRepository: the store (a no-op store when disabled)
//   - func() error: closes the underlying connection, if any
//   - error: connection or migration failure
func OpenHistory(ctx context.Context, cfg config.HistoryConfig) (repository.CalculationRepository, func() error, error) {
	noClose := func() error { return nil }

	if !cfg.Enabled {
		return memory.NoopCalculationRepository{}, noClose, nil
	}

	switch cfg.Driver {
	case config.HistoryDriverMemory, "":
		return memory.NewCalculationRepository(cfg.MaxEntries), noClose, nil
	case config.HistoryDriverSQLite, config.HistoryDriverPostgres:
		db, err := database.Open(database.Config{
			Driver:          cfg.Driver,
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() error { return database.Close(db) }

		repo := sqlstore.NewCalculationRepository(db)
		if err := repo.Ping(ctx); err != nil {
			_ = closeDB()
			return nil, nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			_ = closeDB()
			return nil, nil, err
		}
		return repo, closeDB, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidHistoryDriver, cfg.Driver)
}
