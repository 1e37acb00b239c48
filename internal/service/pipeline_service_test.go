package service

import (
	"context"
	"strings"
	"testing"

	"voice-expense/internal/models"

	"go.uber.org/zap"
)

func newTestPipeline(tr *fakeTranscriber, ex *fakeExtractor) *PipelineService {
	return NewPipelineService(tr, ex, NewGuardrail(DefaultDenylist), zap.NewNop())
}

func baseState() models.AppState {
	return models.AppState{
		Categories: defaultCategories(),
		Pending:    models.PendingBatch{{Item: "Stale", Amount: 1, Category: "Other"}},
		History:    []models.Expense{{Item: "Old", Amount: 2, Category: "Food", Date: "2026-01-01"}},
	}
}

func TestPipeline_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		transcript  string
		transErr    error
		reply       string
		extractErr  error
		outcome     models.Outcome
		pending     int
		llmCalled   bool
		wantErrText bool
	}{
		{
			name:       "coffee",
			transcript: "I bought a coffee for 5 dollars",
			reply:      `[{"item":"Coffee","amount":5.0,"category":"Food"}]`,
			outcome:    models.OutcomePendingReview,
			pending:    1,
			llmCalled:  true,
		},
		{
			name:       "harmful transcript",
			transcript: "I hate people and want to cause harm",
			outcome:    models.OutcomeBlocked,
		},
		{
			name:        "transcription failure",
			transErr:    errUpstream,
			outcome:     models.OutcomeTranscriptionFailed,
			wantErrText: true,
		},
		{
			name:        "llm unavailable",
			transcript:  "taxi for 20",
			extractErr:  errUpstream,
			outcome:     models.OutcomeLLMUnavailable,
			llmCalled:   true,
			wantErrText: true,
		},
		{
			name:        "parse error",
			transcript:  "taxi for 20",
			reply:       "I could not find any expenses",
			outcome:     models.OutcomeParseError,
			llmCalled:   true,
			wantErrText: true,
		},
		{
			name:       "nothing spent",
			transcript: "I didn't spend anything today",
			reply:      "[]",
			outcome:    models.OutcomeEmpty,
			llmCalled:  true,
		},
		{
			name:       "all elements rejected",
			transcript: "snack for some money",
			reply:      `[{"item":"Snack","amount":"some","category":"Food"}]`,
			outcome:    models.OutcomeEmpty,
			llmCalled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTranscriber{text: tt.transcript, err: tt.transErr}
			ex := &fakeExtractor{reply: tt.reply, err: tt.extractErr}
			p := newTestPipeline(tr, ex)

			in := baseState()
			next, result := p.Run(context.Background(), in, "note.mp3", "")

			if result.Outcome != tt.outcome {
				t.Errorf("outcome = %s, want %s", result.Outcome, tt.outcome)
			}
			if len(result.Pending) != tt.pending || len(next.Pending) != tt.pending {
				t.Errorf("pending result=%d state=%d, want %d", len(result.Pending), len(next.Pending), tt.pending)
			}
			if result.Pending == nil {
				t.Error("result pending must be non-nil")
			}
			if (ex.calls > 0) != tt.llmCalled {
				t.Errorf("llm calls = %d, want called=%v", ex.calls, tt.llmCalled)
			}
			if (result.Error != "") != tt.wantErrText {
				t.Errorf("error text = %q", result.Error)
			}
			if len(next.History) != 1 || next.History[0].Item != "Old" {
				t.Errorf("history changed: %v", next.History)
			}
			if len(in.Pending) != 1 || in.Pending[0].Item != "Stale" {
				t.Errorf("input state mutated: %v", in.Pending)
			}
		})
	}
}

func TestPipeline_BlockedReportsTerm(t *testing.T) {
	ex := &fakeExtractor{}
	p := newTestPipeline(&fakeTranscriber{}, ex)

	_, result := p.Process(context.Background(), baseState(), "Where can I buy a WEAPON for 100")
	if result.Outcome != models.OutcomeBlocked || result.BlockedTerm != "weapon" {
		t.Errorf("result = %+v", result)
	}
	if ex.calls != 0 {
		t.Error("extractor must not be called for blocked transcripts")
	}
}

func TestPipeline_PromptUsesCurrentCategories(t *testing.T) {
	ex := &fakeExtractor{reply: `[{"item":"Dog food","amount":30,"category":"pets"}]`}
	p := newTestPipeline(&fakeTranscriber{}, ex)

	state := baseState()
	state.Categories = state.Categories.With("Pets")

	_, result := p.Process(context.Background(), state, "dog food for 30")
	if !strings.Contains(ex.lastPrompt, "Pets") {
		t.Error("prompt does not list the added category")
	}
	if len(result.Pending) != 1 || result.Pending[0].Category != "Pets" {
		t.Errorf("pending = %v", result.Pending)
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("é", 80)
	if got := []rune(preview(long)); len(got) != logPreviewLen {
		t.Errorf("preview length = %d", len(got))
	}
	if preview("short") != "short" {
		t.Error("short text must be unchanged")
	}
}
