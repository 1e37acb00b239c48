package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"voice-expense/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // register sqlite driver
)

type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	if err := RunSQLiteMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	logger.Info("SQLite store opened", zap.String("path", dbPath))
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (r *SQLiteStore) Load(ctx context.Context) ([]models.Expense, error) {
	sqlStr, args, err := squirrel.Select(expenseColumns...).
		From("expenses").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	history := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.Item, &e.Amount, &e.Category, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		history = append(history, e)
	}
	return history, rows.Err()
}

func (r *SQLiteStore) Save(ctx context.Context, history []models.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	position := 1
	for _, batch := range chunks(history) {
		builder := squirrel.Insert("expenses").
			Columns(append([]string{"position"}, expenseColumns...)...)
		for _, e := range batch {
			builder = builder.Values(position, e.Item, e.Amount, e.Category, e.Date)
			position++
		}

		sqlStr, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("failed to insert expenses: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expenses: %w", err)
	}

	r.logger.Info("Expense history saved", zap.String("backend", "sqlite"), zap.Int("count", len(history)))
	return nil
}

func (r *SQLiteStore) Close() error {
	return r.db.Close()
}
