package repository

import (
	"context"
	"fmt"

	"voice-expense/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var expenseColumns = []string{"item", "amount", "category", "spent_on"}

type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresStore) Load(ctx context.Context) ([]models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	history := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.Item, &e.Amount, &e.Category, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

// Save rewrites the table in one transaction.
func (r *PostgresStore) Save(ctx context.Context, history []models.Expense) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	position := 1
	for _, batch := range chunks(history) {
		builder := squirrel.Insert("expenses").
			Columns(append([]string{"position"}, expenseColumns...)...).
			PlaceholderFormat(squirrel.Dollar)

		for _, e := range batch {
			builder = builder.Values(position, e.Item, e.Amount, e.Category, e.Date)
			position++
		}

		sql, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert expenses: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit expenses: %w", err)
	}

	r.logger.Info("Expense history saved", zap.String("backend", "postgres"), zap.Int("count", len(history)))
	return nil
}

func (r *PostgresStore) Close() error {
	r.db.Close()
	return nil
}
