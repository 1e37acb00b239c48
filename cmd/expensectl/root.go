package main

import (
	"context"
	"fmt"

	"voice-expense/internal/app"
	"voice-expense/pkg/config"
	"voice-expense/pkg/logger"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagYes       bool
	flagTimeframe string

	cfg    *config.Config
	appLog *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "expensectl",
	Short:        "Voice note expense tracker",
	Long:         "Extract expenses from voice notes, review them and manage the saved history.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := logger.Init(logger.Options{Level: cfg.Logger.Level, File: cfg.Logger.File}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		appLog = logger.Get()
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")
}

// openApp wires the workspace; pipeline also connects the STT and LLM clients.
func openApp(ctx context.Context, pipeline bool) (*app.App, error) {
	if pipeline {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return app.Build(ctx, cfg, appLog, app.Options{Pipeline: pipeline})
}

// confirm asks a yes/no question unless --yes was given.
func confirm(title string) (bool, error) {
	if flagYes {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
