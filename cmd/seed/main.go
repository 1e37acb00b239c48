package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"voice-expense/internal/models"
	"voice-expense/internal/repository"
	"voice-expense/pkg/config"
	"voice-expense/pkg/logger"

	"go.uber.org/zap"
)

// Imports legacy expense_data.json files into the configured store.
//
//	seed [file-or-dir ...]
//
// Without arguments every *.json file in cmd/seed is imported. Files whose
// content was imported before are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(logger.Options{Level: cfg.Logger.Level, File: cfg.Logger.File}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, appLogger.Named("repository"))
	if err != nil {
		appLogger.Fatal("Failed to open history store", zap.Error(err))
	}
	defer store.Close()

	seedDir := filepath.Join("cmd", "seed")
	sources := os.Args[1:]
	if len(sources) == 0 {
		sources = []string{seedDir}
	}
	cacheFile := filepath.Join(seedDir, ".seed_cache.json")

	appLogger.Info("Starting expense import...", zap.Strings("sources", sources))

	s := &seeder{
		store:      store,
		categories: models.NewCategorySet(cfg.Expense.Categories),
		logger:     appLogger,
	}
	result, err := s.run(ctx, sources, cacheFile)
	if err != nil {
		appLogger.Fatal("Failed to import expenses", zap.Error(err))
	}

	appLogger.Info("Expense import completed",
		zap.Int("files", result.Files),
		zap.Int("skipped_files", result.SkippedFiles),
		zap.Int("imported", result.Imported),
		zap.Int("rejected", result.Rejected),
	)
}
