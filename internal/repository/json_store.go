package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"voice-expense/internal/models"

	"go.uber.org/zap"
)

// JSONFileStore keeps the history as one pretty-printed JSON array.
type JSONFileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewJSONFileStore(path string, logger *zap.Logger) *JSONFileStore {
	return &JSONFileStore{
		path:   path,
		logger: logger,
	}
}

// Load never fails: a missing file is an empty history, and an unreadable or
// malformed file is logged and also read as empty.
func (s *JSONFileStore) Load(ctx context.Context) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("Error loading expense history from file", zap.String("path", s.path), zap.Error(err))
		}
		return []models.Expense{}, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Expense{}, nil
	}

	var history []models.Expense
	if err := json.Unmarshal(data, &history); err != nil {
		s.logger.Error("Error loading expense history from file",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return []models.Expense{}, nil
	}
	if history == nil {
		history = []models.Expense{}
	}

	s.logger.Debug("Expense history loaded", zap.String("path", s.path), zap.Int("count", len(history)))
	return history, nil
}

// Save writes to a temp file in the target directory and renames it over
// the target, so a crash leaves either the old or the new history.
func (s *JSONFileStore) Save(ctx context.Context, history []models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if history == nil {
		history = []models.Expense{}
	}
	data, err := json.MarshalIndent(history, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal expense history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write expense history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync expense history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace expense history: %w", err)
	}

	s.logger.Info("Expense history successfully saved", zap.String("path", s.path), zap.Int("count", len(history)))
	return nil
}

func (s *JSONFileStore) Close() error { return nil }
