package app

import (
	"context"
	"fmt"

	"voice-expense/internal/repository"
	"voice-expense/internal/service"
	"voice-expense/pkg/amqp"
	"voice-expense/pkg/config"

	"go.uber.org/zap"
)

// Options selects which external clients Build connects.
type Options struct {
	// Pipeline builds the speech-to-text and LLM clients. Commands that only
	// read or edit history leave it off.
	Pipeline bool
}

// App is a workspace with its dependencies wired from configuration.
type App struct {
	Workspace   *service.Workspace
	Transcriber *service.WhisperTranscriber
	extractor   service.Extractor
}

func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	store, err := repository.Open(ctx, cfg, logger.Named("repository"))
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	a := &App{}
	var pipeline *service.PipelineService
	if opts.Pipeline {
		a.extractor, err = service.NewExtractor(&cfg.LLM, logger.Named("llm"))
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
		a.Transcriber = service.NewWhisperTranscriber(&cfg.Whisper, logger.Named("stt"))
		pipeline = service.NewPipelineService(
			a.Transcriber,
			a.extractor,
			service.NewGuardrail(service.DefaultDenylist),
			logger.Named("pipeline"),
		)
	}

	a.Workspace, err = service.NewWorkspace(
		ctx,
		store,
		pipeline,
		service.NewExpenseService(logger.Named("expenses")),
		newPublisher(cfg, logger.Named("amqp")),
		cfg.Expense.Categories,
		logger.Named("workspace"),
	)
	if err != nil {
		store.Close()
		a.closeExtractor(logger)
		return nil, err
	}
	return a, nil
}

// newPublisher connects to the broker when AMQP_URL is set. A broker that is
// down does not stop the service; events are then dropped.
func newPublisher(cfg *config.Config, logger *zap.Logger) amqp.Publisher {
	if cfg.AMQP.URL == "" {
		return amqp.NoopPublisher{}
	}
	client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, logger)
	if err != nil {
		logger.Warn("AMQP unavailable, history events disabled", zap.Error(err))
		return amqp.NoopPublisher{}
	}
	return client
}

func (a *App) Close(logger *zap.Logger) {
	if err := a.Workspace.Close(); err != nil {
		logger.Warn("Failed to close workspace", zap.Error(err))
	}
	a.closeExtractor(logger)
}

func (a *App) closeExtractor(logger *zap.Logger) {
	if a.extractor == nil {
		return
	}
	if err := a.extractor.Close(); err != nil {
		logger.Warn("Failed to close LLM client", zap.Error(err))
	}
}
