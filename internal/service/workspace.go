package service

import (
	"context"
	"fmt"
	"sync"

	"voice-expense/internal/models"
	"voice-expense/internal/repository"
	"voice-expense/pkg/amqp"

	"go.uber.org/zap"
)

// Workspace owns the session AppState. Every action runs under one mutex,
// so a second pipeline run waits for the first. History changes are written
// to the store before they become visible.
type Workspace struct {
	mu        sync.Mutex
	state     models.AppState
	store     repository.HistoryStore
	pipeline  *PipelineService
	expenses  *ExpenseService
	publisher amqp.Publisher
	logger    *zap.Logger
}

// NewWorkspace loads the persisted history. A store that cannot be read
// (as opposed to an empty or corrupt file) is an error.
func NewWorkspace(
	ctx context.Context,
	store repository.HistoryStore,
	pipeline *PipelineService,
	expenses *ExpenseService,
	publisher amqp.Publisher,
	categories []string,
	logger *zap.Logger,
) (*Workspace, error) {
	history, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense history: %w", err)
	}
	if publisher == nil {
		publisher = amqp.NoopPublisher{}
	}

	logger.Info("Workspace ready",
		zap.Int("history", len(history)),
		zap.Int("categories", len(categories)),
	)

	return &Workspace{
		state: models.AppState{
			Categories: models.NewCategorySet(categories),
			History:    history,
		},
		store:     store,
		pipeline:  pipeline,
		expenses:  expenses,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// State returns a copy of the current state.
func (w *Workspace) State() models.AppState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

func (w *Workspace) Categories() models.CategorySet {
	return w.State().Categories
}

func (w *Workspace) Pending() models.PendingBatch {
	pending := w.State().Pending
	if pending == nil {
		return models.PendingBatch{}
	}
	return pending
}

// Run processes an audio file. Whatever was pending before is discarded.
func (w *Workspace) Run(ctx context.Context, audioPath, model string) models.RunResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, result := w.pipeline.Run(ctx, w.state, audioPath, model)
	w.state = next
	return result
}

// RunTranscript processes text that has already been transcribed.
func (w *Workspace) RunTranscript(ctx context.Context, transcript string) models.RunResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, result := w.pipeline.Process(ctx, w.state, transcript)
	w.state = next
	return result
}

func (w *Workspace) ReplacePending(rows []models.PendingExpense) (models.PendingBatch, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := w.expenses.ReplacePending(w.state, rows)
	if err != nil {
		return nil, err
	}
	w.state = next
	return append(models.PendingBatch{}, next.Pending...), nil
}

func (w *Workspace) PatchPending(row int, patch PendingPatch) (models.PendingExpense, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := w.expenses.PatchPending(w.state, row, patch)
	if err != nil {
		return models.PendingExpense{}, err
	}
	w.state = next
	return next.Pending[row-1], nil
}

func (w *Workspace) DiscardPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = w.expenses.DiscardPending(w.state)
}

// Confirm persists the pending batch. Nothing pending is a no-op that
// does not touch the store.
func (w *Workspace) Confirm(ctx context.Context) ([]models.Expense, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, saved := w.expenses.Confirm(w.state)
	if len(saved) == 0 {
		return []models.Expense{}, nil
	}
	if err := w.commit(ctx, next); err != nil {
		return nil, err
	}

	w.publish(ctx, amqp.ActionConfirm, saved)
	return saved, nil
}

// Delete removes the record at the 1-based index.
func (w *Workspace) Delete(ctx context.Context, index int) (models.Expense, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, removed, err := w.expenses.Delete(w.state, index)
	if err != nil {
		return models.Expense{}, err
	}
	if err := w.commit(ctx, next); err != nil {
		return models.Expense{}, err
	}

	w.publish(ctx, amqp.ActionDelete, []models.Expense{removed})
	return removed, nil
}

// Clear empties history and pending and rewrites the store.
func (w *Workspace) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	removed := w.state.History
	if err := w.commit(ctx, w.expenses.Clear(w.state)); err != nil {
		return err
	}

	w.logger.Info("Expense history cleared", zap.Int("removed", len(removed)))
	w.publish(ctx, amqp.ActionClear, removed)
	return nil
}

// List returns history rows within tf, with their 1-based indices.
func (w *Workspace) List(tf Timeframe) []IndexedExpense {
	w.mu.Lock()
	defer w.mu.Unlock()
	return FilterHistory(w.state.History, tf, w.expenses.Now())
}

func (w *Workspace) Summary(tf Timeframe) Summary {
	return Summarize(tf, w.List(tf))
}

func (w *Workspace) AddCategory(name string) (models.CategorySet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := w.expenses.AddCategory(w.state, name)
	if err != nil {
		return nil, err
	}
	w.state = next
	return append(models.CategorySet(nil), next.Categories...), nil
}

// commit saves next.History and only then adopts next.
func (w *Workspace) commit(ctx context.Context, next models.AppState) error {
	if err := w.store.Save(ctx, next.History); err != nil {
		w.logger.Error("Failed to save expense history", zap.Error(err))
		return fmt.Errorf("failed to save expense history: %w", err)
	}
	w.state = next
	return nil
}

func (w *Workspace) publish(ctx context.Context, action string, expenses []models.Expense) {
	msg := amqp.NewHistoryChangedMessage(action, len(w.state.History), expenses)
	if err := w.publisher.PublishHistoryChanged(ctx, msg); err != nil {
		w.logger.Warn("Failed to publish history change",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Close releases the store and the publisher.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.publisher.Close(); err != nil {
		w.logger.Warn("Failed to close publisher", zap.Error(err))
	}
	return w.store.Close()
}
