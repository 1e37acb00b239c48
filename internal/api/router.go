package api

import (
	"time"

	"voice-expense/docs"
	"voice-expense/internal/api/handlers"
	"voice-expense/pkg/auth"
	"voice-expense/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type RouterConfig struct {
	// BodyLimit caps request bodies, uploads included. Zero keeps fiber's default.
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// JWTManager enables bearer auth on /api/v1 when non-nil.
	JWTManager   *auth.JWTManager
}

func SetupRouter(
	pipelineHandler *handlers.PipelineHandler,
	expenseHandler *handlers.ExpenseHandler,
	categoryHandler *handlers.CategoryHandler,
	cfg RouterConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "voice-expense",
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				appLogger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the swagger document via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if cfg.JWTManager == nil {
		appLogger.Warn("JWT_SECRET_KEY not set, API is served without authentication")
	}
	protected := app.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTManager, appLogger))

	protected.Post("/pipeline/run", pipelineHandler.RunPipeline)
	protected.Get("/pipeline/models", pipelineHandler.ListModels)

	pending := protected.Group("/pending")
	pending.Get("", pipelineHandler.GetPending)
	pending.Put("", pipelineHandler.ReplacePending)
	pending.Delete("", pipelineHandler.DiscardPending)
	pending.Post("/confirm", pipelineHandler.ConfirmPending)
	pending.Patch("/:row", pipelineHandler.PatchPending)

	expenses := protected.Group("/expenses")
	expenses.Get("", expenseHandler.ListExpenses)
	expenses.Get("/summary", expenseHandler.Summary)
	expenses.Delete("", expenseHandler.ClearExpenses)
	expenses.Delete("/:index", expenseHandler.DeleteExpense)

	categories := protected.Group("/categories")
	categories.Get("", categoryHandler.ListCategories)
	categories.Post("", categoryHandler.AddCategory)

	return app
}
