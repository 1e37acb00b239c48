package service

import (
	"context"
	"errors"

	"voice-expense/internal/models"

	"go.uber.org/zap"
)

// logPreviewLen caps how much of a transcript ends up in the logs.
const logPreviewLen = 50

// PipelineService runs one voice note through transcription, the guardrail
// and extraction. It holds no session state: every call takes the current
// AppState and returns the next one.
type PipelineService struct {
	transcriber Transcriber
	extractor   Extractor
	guardrail   *Guardrail
	logger      *zap.Logger
}

func NewPipelineService(transcriber Transcriber, extractor Extractor, guardrail *Guardrail, logger *zap.Logger) *PipelineService {
	return &PipelineService{
		transcriber: transcriber,
		extractor:   extractor,
		guardrail:   guardrail,
		logger:      logger,
	}
}

// Run transcribes audioPath and continues with Process. Any pending batch in
// state is discarded.
func (s *PipelineService) Run(ctx context.Context, state models.AppState, audioPath, model string) (models.AppState, models.RunResult) {
	next := state.Clone()
	next.Pending = nil

	s.stage(models.StageTranscribing)
	transcript, err := s.transcriber.Transcribe(ctx, audioPath, model)
	if err != nil {
		s.logger.Error("Transcription failed", zap.String("file", audioPath), zap.Error(err))
		s.stage(models.StageIdle)
		return next, models.RunResult{
			Outcome: models.OutcomeTranscriptionFailed,
			Pending: models.PendingBatch{},
			Error:   err.Error(),
			Err:     err,
		}
	}

	return s.Process(ctx, next, transcript)
}

// Process runs an already transcribed note through the guardrail, the LLM
// and validation.
func (s *PipelineService) Process(ctx context.Context, state models.AppState, transcript string) (models.AppState, models.RunResult) {
	next := state.Clone()
	next.Pending = nil
	result := models.RunResult{Transcript: transcript, Pending: models.PendingBatch{}}
	defer s.stage(models.StageIdle)

	s.stage(models.StageFiltering)
	if term, blocked := s.guardrail.Check(transcript); blocked {
		s.stage(models.StageBlocked)
		s.logger.Warn("Transcript blocked by guardrail",
			zap.String("term", term),
			zap.String("transcript", preview(transcript)),
		)
		result.Outcome = models.OutcomeBlocked
		result.BlockedTerm = term
		return next, result
	}

	s.stage(models.StageExtracting)
	raw, err := s.extractor.Extract(ctx, transcript, BuildSystemPrompt(next.Categories))
	if err != nil {
		s.logger.Error("LLM extraction failed", zap.Error(err))
		result.Outcome = models.OutcomeLLMUnavailable
		result.Error = err.Error()
		result.Err = err
		return next, result
	}

	pending, rejected, err := ParseExtraction(raw, next.Categories)
	if err != nil {
		s.logger.Warn("LLM returned malformed output",
			zap.String("raw", preview(raw)),
			zap.Error(err),
		)
		result.Outcome = models.OutcomeParseError
		result.Error = err.Error()
		result.Err = err
		return next, result
	}
	for _, r := range rejected {
		s.logger.Warn("Extracted element rejected",
			zap.Int("index", r.Index),
			zap.String("reason", r.Reason),
			zap.String("raw", r.Raw),
		)
	}
	result.Rejected = rejected

	if len(pending) == 0 {
		s.stage(models.StageEmpty)
		result.Outcome = models.OutcomeEmpty
		return next, result
	}

	s.stage(models.StagePending)
	next.Pending = pending
	result.Outcome = models.OutcomePendingReview
	result.Pending = pending

	s.logger.Info("Expenses extracted",
		zap.Int("pending", len(pending)),
		zap.Int("rejected", len(rejected)),
	)
	return next, result
}

func (s *PipelineService) stage(st models.RunStage) {
	s.logger.Debug("Pipeline stage", zap.String("stage", string(st)))
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= logPreviewLen {
		return s
	}
	return string(r[:logPreviewLen])
}

// IsClientError reports whether err came from bad caller input rather than a
// failing upstream.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnsupportedAudio) || errors.Is(err, ErrUnknownModel)
}
