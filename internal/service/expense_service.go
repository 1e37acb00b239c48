package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"voice-expense/internal/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidIndex      = errors.New("invalid index number")
	ErrInvalidPendingRow = errors.New("invalid pending row")
	ErrInvalidCategory   = errors.New("category is not in the category set")
	ErrCategoryExists    = errors.New("category already exists")
	ErrEmptyCategory     = errors.New("category name cannot be empty")
	ErrEmptyItem         = errors.New("item cannot be empty")
)

// PendingPatch changes selected fields of one pending row. Nil fields are
// left as they are.
type PendingPatch struct {
	Item     *string
	Amount   *float64
	Category *string
}

// ExpenseService implements the history and review operations as pure
// transitions on AppState. Persisting the result is the caller's job.
type ExpenseService struct {
	now    func() time.Time
	logger *zap.Logger
}

func NewExpenseService(logger *zap.Logger) *ExpenseService {
	return &ExpenseService{now: time.Now, logger: logger}
}

// WithClock replaces the time source used to stamp confirmed records.
func (s *ExpenseService) WithClock(now func() time.Time) *ExpenseService {
	s.now = now
	return s
}

func (s *ExpenseService) Now() time.Time {
	return s.now()
}

// Confirm moves the pending batch into history, stamped with today's date.
// With nothing pending it returns state unchanged and no records.
func (s *ExpenseService) Confirm(state models.AppState) (models.AppState, []models.Expense) {
	if len(state.Pending) == 0 {
		return state, nil
	}

	next := state.Clone()
	rows := make(models.PendingBatch, 0, len(next.Pending))
	for _, p := range next.Pending {
		p.Item = strings.TrimSpace(p.Item)
		p.Category = next.Categories.Normalize(p.Category)
		rows = append(rows, p)
	}

	saved := rows.Confirm(s.now())
	next.History = append(next.History, saved...)
	next.Pending = nil

	s.logger.Info("Pending expenses confirmed", zap.Int("count", len(saved)))
	return next, saved
}

// ReplacePending swaps the whole review grid for rows after validating each.
func (s *ExpenseService) ReplacePending(state models.AppState, rows []models.PendingExpense) (models.AppState, error) {
	batch := make(models.PendingBatch, 0, len(rows))
	for i, r := range rows {
		clean, err := validatePendingRow(state.Categories, r)
		if err != nil {
			return state, fmt.Errorf("row %d: %w", i+1, err)
		}
		batch = append(batch, clean)
	}

	next := state.Clone()
	next.Pending = batch
	return next, nil
}

// PatchPending edits the 1-based row of the pending batch.
func (s *ExpenseService) PatchPending(state models.AppState, row int, patch PendingPatch) (models.AppState, error) {
	if row < 1 || row > len(state.Pending) {
		return state, fmt.Errorf("%w: %d (1 to %d)", ErrInvalidPendingRow, row, len(state.Pending))
	}

	updated := state.Pending[row-1]
	if patch.Item != nil {
		updated.Item = *patch.Item
	}
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
	}

	clean, err := validatePendingRow(state.Categories, updated)
	if err != nil {
		return state, err
	}

	next := state.Clone()
	next.Pending[row-1] = clean
	return next, nil
}

// DiscardPending drops the unconfirmed batch.
func (s *ExpenseService) DiscardPending(state models.AppState) models.AppState {
	next := state.Clone()
	next.Pending = nil
	return next
}

// Delete removes the 1-based index from history. An out-of-range index
// leaves state untouched.
func (s *ExpenseService) Delete(state models.AppState, index int) (models.AppState, models.Expense, error) {
	if index < 1 || index > len(state.History) {
		return state, models.Expense{}, fmt.Errorf("%w: %d (1 to %d)", ErrInvalidIndex, index, len(state.History))
	}

	next := state.Clone()
	removed := next.History[index-1]
	next.History = append(next.History[:index-1], next.History[index:]...)

	s.logger.Info("Expense removed",
		zap.Int("index", index),
		zap.String("item", removed.Item),
		zap.Float64("amount", removed.Amount),
	)
	return next, removed, nil
}

// Clear empties history and pending. Categories survive.
func (s *ExpenseService) Clear(state models.AppState) models.AppState {
	return models.AppState{
		Categories: append(models.CategorySet(nil), state.Categories...),
		Pending:    nil,
		History:    []models.Expense{},
	}
}

// AddCategory appends a new category. Duplicates are exact matches after
// trimming, so "pets" may sit next to "Pets".
func (s *ExpenseService) AddCategory(state models.AppState, name string) (models.AppState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return state, ErrEmptyCategory
	}
	if state.Categories.Contains(name) {
		return state, fmt.Errorf("%w: %s", ErrCategoryExists, name)
	}

	next := state.Clone()
	next.Categories = next.Categories.With(name)
	s.logger.Info("Category added", zap.String("category", name))
	return next, nil
}

func validatePendingRow(categories models.CategorySet, r models.PendingExpense) (models.PendingExpense, error) {
	r.Item = cleanItem(r.Item)
	if r.Item == "" {
		return r, ErrEmptyItem
	}
	if r.Amount < 0 || math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return r, ErrInvalidAmount
	}
	canonical, ok := categories.Lookup(strings.TrimSpace(r.Category))
	if !ok {
		return r, fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	r.Category = canonical
	return r, nil
}
