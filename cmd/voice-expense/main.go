package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-expense/internal/api"
	"voice-expense/internal/api/handlers"
	"voice-expense/internal/app"
	"voice-expense/pkg/auth"
	"voice-expense/pkg/config"
	"voice-expense/pkg/logger"

	"go.uber.org/zap"
)

// @title Voice Expense API
// @version 1.0
// @description Turns voice notes into reviewed, persisted expense records

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Options{Level: cfg.Logger.Level, File: cfg.Logger.File}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting voice-expense service",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("storage", cfg.Storage.Backend),
	)

	ctx := context.Background()
	application, err := app.Build(ctx, cfg, appLogger, app.Options{Pipeline: true})
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close(appLogger)

	var jwtManager *auth.JWTManager
	if cfg.JWT.SecretKey != "" {
		jwtManager = auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	}

	pipelineHandler := handlers.NewPipelineHandler(application.Workspace, application.Transcriber, cfg.Server.UploadDir, logger.Named("http"))
	expenseHandler := handlers.NewExpenseHandler(application.Workspace, logger.Named("http"))
	categoryHandler := handlers.NewCategoryHandler(application.Workspace, logger.Named("http"))

	server := api.SetupRouter(pipelineHandler, expenseHandler, categoryHandler, api.RouterConfig{
		BodyLimit:    cfg.Server.MaxUploadSize,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		JWTManager:   jwtManager,
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := server.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
