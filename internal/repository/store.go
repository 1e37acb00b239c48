package repository

import (
	"context"
	"fmt"

	"voice-expense/internal/models"
	"voice-expense/pkg/config"
	"voice-expense/pkg/postgres"

	"go.uber.org/zap"
)

// HistoryStore persists the full expense history. Save always replaces the
// stored sequence with the given one.
type HistoryStore interface {
	Load(ctx context.Context) ([]models.Expense, error)
	Save(ctx context.Context, history []models.Expense) error
	Close() error
}

// Open returns the store selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (HistoryStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		if err := RunPostgresMigrations(cfg.Database.URL("pgx5")); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool, logger), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Storage.SQLitePath, logger)
	case config.BackendFile, "":
		return NewJSONFileStore(cfg.Storage.ExpenseFile, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

const insertChunkSize = 500

// chunks splits history into insert batches, keeping 1-based positions.
func chunks(history []models.Expense) [][]models.Expense {
	var out [][]models.Expense
	for start := 0; start < len(history); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(history) {
			end = len(history)
		}
		out = append(out, history[start:end])
	}
	return out
}
