package models

// AppState is everything a session works on. Pipeline stages take a state
// value and return the next one.
type AppState struct {
	Categories CategorySet
	Pending    PendingBatch
	History    []Expense
}

// Clone returns a state that shares no slices with s.
func (s AppState) Clone() AppState {
	return AppState{
		Categories: append(CategorySet(nil), s.Categories...),
		Pending:    append(PendingBatch(nil), s.Pending...),
		History:    append([]Expense(nil), s.History...),
	}
}

// RunStage names the steps of a single pipeline run.
type RunStage string

const (
	StageIdle         RunStage = "idle"
	StageTranscribing RunStage = "transcribing"
	StageFiltering    RunStage = "filtering"
	StageBlocked      RunStage = "blocked"
	StageExtracting   RunStage = "extracting"
	StageEmpty        RunStage = "empty"
	StagePending      RunStage = "pending_review"
)

// Outcome is the terminal result of a pipeline run.
type Outcome string

const (
	OutcomeBlocked             Outcome = "blocked"
	OutcomeEmpty               Outcome = "empty"
	OutcomePendingReview       Outcome = "pending_review"
	OutcomeLLMUnavailable      Outcome = "llm_unavailable"
	OutcomeParseError          Outcome = "parse_error"
	OutcomeTranscriptionFailed Outcome = "transcription_failed"
)

// Rejection describes an extracted element that was dropped by validation.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Raw    string `json:"raw,omitempty"`
}

// RunResult is what a pipeline run reports back to the presentation layer.
type RunResult struct {
	Transcript  string       `json:"transcript"`
	Outcome     Outcome      `json:"outcome"`
	Pending     PendingBatch `json:"pending"`
	Rejected    []Rejection  `json:"rejected,omitempty"`
	BlockedTerm string       `json:"blocked_term,omitempty"`
	Error       string       `json:"error,omitempty"`
	// Err is the failure behind Error, for callers that branch on it.
	Err         error        `json:"-"`
}
