package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"voice-expense/internal/models"
	"voice-expense/internal/repository"
	"voice-expense/pkg/amqp"

	"go.uber.org/zap"
)

type workspaceFixture struct {
	ws        *Workspace
	store     *memStore
	extractor *fakeExtractor
	publisher *recordingPublisher
}

func newWorkspaceFixture(t *testing.T, history []models.Expense) *workspaceFixture {
	t.Helper()
	store := &memStore{history: history}
	ex := &fakeExtractor{reply: `[{"item":"Coffee","amount":5.0,"category":"Food"}]`}
	pub := &recordingPublisher{}
	pipeline := NewPipelineService(&fakeTranscriber{text: "I bought a coffee for 5 dollars"}, ex, NewGuardrail(DefaultDenylist), zap.NewNop())

	ws, err := NewWorkspace(context.Background(), store, pipeline, newTestExpenseService(), pub, defaultCategories(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}
	return &workspaceFixture{ws: ws, store: store, extractor: ex, publisher: pub}
}

func TestWorkspace_CoffeeEndToEnd(t *testing.T) {
	f := newWorkspaceFixture(t, historyOf("a"))
	ctx := context.Background()

	result := f.ws.Run(ctx, "note.m4a", "")
	if result.Outcome != models.OutcomePendingReview || len(f.ws.Pending()) != 1 {
		t.Fatalf("result = %+v", result)
	}

	saved, err := f.ws.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if len(saved) != 1 || saved[0].Date != "2026-10-19" || saved[0].Amount != 5.0 || saved[0].Category != "Food" {
		t.Errorf("saved = %v", saved)
	}

	state := f.ws.State()
	if len(state.History) != 2 || len(state.Pending) != 0 {
		t.Errorf("state = %+v", state)
	}
	if f.store.saves != 1 || len(f.store.history) != 2 {
		t.Errorf("store saves = %d history = %v", f.store.saves, f.store.history)
	}
	if len(f.publisher.messages) != 1 || f.publisher.messages[0].Action != amqp.ActionConfirm || f.publisher.messages[0].Count != 2 {
		t.Errorf("published = %+v", f.publisher.messages)
	}
}

func TestWorkspace_HarmfulTranscriptLeavesHistory(t *testing.T) {
	f := newWorkspaceFixture(t, historyOf("a"))

	result := f.ws.RunTranscript(context.Background(), "I hate people and want to cause harm")
	if result.Outcome != models.OutcomeBlocked {
		t.Errorf("outcome = %s", result.Outcome)
	}
	if f.extractor.calls != 0 {
		t.Error("LLM called for blocked transcript")
	}
	if len(f.ws.State().History) != 1 || f.store.saves != 0 {
		t.Error("history changed")
	}
}

func TestWorkspace_ConfirmEmptyDoesNotWrite(t *testing.T) {
	f := newWorkspaceFixture(t, historyOf("a"))

	saved, err := f.ws.Confirm(context.Background())
	if err != nil || len(saved) != 0 {
		t.Errorf("Confirm() = %v, %v", saved, err)
	}
	if f.store.saves != 0 || len(f.publisher.messages) != 0 {
		t.Errorf("saves = %d, published = %d", f.store.saves, len(f.publisher.messages))
	}
}

func TestWorkspace_NewRunDiscardsPending(t *testing.T) {
	f := newWorkspaceFixture(t, nil)
	ctx := context.Background()

	f.ws.Run(ctx, "first.mp3", "")
	f.extractor.reply = "[]"
	result := f.ws.Run(ctx, "second.mp3", "")

	if result.Outcome != models.OutcomeEmpty || len(f.ws.Pending()) != 0 {
		t.Errorf("outcome = %s pending = %v", result.Outcome, f.ws.Pending())
	}
}

func TestWorkspace_DeleteAndClear(t *testing.T) {
	f := newWorkspaceFixture(t, historyOf("a", "b", "c"))
	ctx := context.Background()

	if _, err := f.ws.Delete(ctx, 4); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Delete(4) error = %v", err)
	}
	if f.store.saves != 0 {
		t.Error("invalid delete wrote the store")
	}

	removed, err := f.ws.Delete(ctx, 1)
	if err != nil || removed.Item != "a" {
		t.Fatalf("Delete(1) = %v, %v", removed, err)
	}
	if got := f.ws.List(TimeframeAll); len(got) != 2 || got[0].Index != 1 || got[0].Item != "b" {
		t.Errorf("list after delete = %v", got)
	}

	if err := f.ws.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if len(f.ws.State().History) != 0 || len(f.store.history) != 0 {
		t.Error("history not cleared")
	}
	if len(f.publisher.messages) != 2 || f.publisher.messages[1].Action != amqp.ActionClear || len(f.publisher.messages[1].Expenses) != 2 {
		t.Errorf("published = %+v", f.publisher.messages)
	}
}

func TestWorkspace_SaveFailureKeepsState(t *testing.T) {
	f := newWorkspaceFixture(t, historyOf("a"))
	ctx := context.Background()
	f.ws.Run(ctx, "note.mp3", "")

	f.store.saveErr = errors.New("disk full")
	if _, err := f.ws.Confirm(ctx); err == nil {
		t.Fatal("expected save error")
	}
	state := f.ws.State()
	if len(state.History) != 1 || len(state.Pending) != 1 {
		t.Errorf("state after failed save = %+v", state)
	}
	if len(f.publisher.messages) != 0 {
		t.Error("published after failed save")
	}
}

func TestWorkspace_PublishFailureIsNotFatal(t *testing.T) {
	f := newWorkspaceFixture(t, historyOf("a"))
	f.publisher.err = errors.New("channel closed")

	if _, err := f.ws.Delete(context.Background(), 1); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestWorkspace_LoadErrorIsFatal(t *testing.T) {
	store := &memStore{loadErr: errors.New("connection refused")}
	_, err := NewWorkspace(context.Background(), store, nil, newTestExpenseService(), nil, defaultCategories(), zap.NewNop())
	if err == nil {
		t.Fatal("expected load error")
	}
}

func TestWorkspace_FileStorePersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense_data.json")
	ctx := context.Background()

	open := func() *Workspace {
		pipeline := NewPipelineService(
			&fakeTranscriber{text: "taxi 15.50 and a snack 12"},
			&fakeExtractor{reply: `[{"item":"Taxi","amount":15.5,"category":"Transport"},{"item":"Snack","amount":"12","category":"Food"}]`},
			NewGuardrail(DefaultDenylist), zap.NewNop(),
		)
		ws, err := NewWorkspace(ctx, repository.NewJSONFileStore(path, zap.NewNop()), pipeline, newTestExpenseService(), nil, defaultCategories(), zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		return ws
	}

	ws := open()
	if _, err := ws.Confirm(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("empty confirm created the file: %v", err)
	}

	ws.Run(ctx, "note.wav", "")
	if _, err := ws.Confirm(ctx); err != nil {
		t.Fatal(err)
	}
	ws.Close()

	reopened := open()
	defer reopened.Close()
	history := reopened.State().History
	if len(history) != 2 || history[1].Item != "Snack" || history[1].Amount != 12 || history[0].Date != "2026-10-19" {
		t.Errorf("reloaded history = %v", history)
	}

	summary := reopened.Summary(TimeframeAll)
	if summary.Total.String() != "27.5" {
		t.Errorf("total = %s", summary.Total)
	}
}

func TestWorkspace_CategoriesAndPendingEdits(t *testing.T) {
	f := newWorkspaceFixture(t, nil)

	cats, err := f.ws.AddCategory("Pets")
	if err != nil || !cats.Contains("Pets") {
		t.Fatalf("AddCategory() = %v, %v", cats, err)
	}

	f.ws.Run(context.Background(), "note.mp3", "")
	category := "Pets"
	row, err := f.ws.PatchPending(1, PendingPatch{Category: &category})
	if err != nil || row.Category != "Pets" {
		t.Errorf("PatchPending() = %+v, %v", row, err)
	}

	batch, err := f.ws.ReplacePending([]models.PendingExpense{{Item: "Bus", Amount: 2.5, Category: "Transport"}})
	if err != nil || len(batch) != 1 {
		t.Errorf("ReplacePending() = %v, %v", batch, err)
	}

	f.ws.DiscardPending()
	if len(f.ws.Pending()) != 0 {
		t.Error("pending not discarded")
	}
}
