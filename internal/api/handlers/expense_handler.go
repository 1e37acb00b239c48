package handlers

import (
	"errors"

	"voice-expense/internal/dto"
	"voice-expense/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	workspace *service.Workspace
	logger    *zap.Logger
}

func NewExpenseHandler(workspace *service.Workspace, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// ListExpenses godoc
// @Summary List saved expenses
// @Description Rows carry their 1-based index in the full history, as used by delete.
// @Tags expenses
// @Produce json
// @Param timeframe query string false "all, last_7_days, this_month, this_year" default(all)
// @Security Bearer
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	tf, err := service.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rows := h.workspace.List(tf)
	return c.JSON(dto.ExpenseListResponse{
		Timeframe: tf,
		Label:     tf.Label(),
		Expenses:  rows,
		Count:     len(rows),
	})
}

// Summary godoc
// @Summary Spending totals
// @Description Total and per-category totals for the timeframe.
// @Tags expenses
// @Produce json
// @Param timeframe query string false "all, last_7_days, this_month, this_year" default(all)
// @Security Bearer
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *fiber.Ctx) error {
	tf, err := service.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.SummaryResponse{
		Summary: h.workspace.Summary(tf),
		Label:   tf.Label(),
	})
}

// DeleteExpense godoc
// @Summary Delete one expense
// @Tags expenses
// @Produce json
// @Param index path int true "1-based index"
// @Security Bearer
// @Success 200 {object} dto.DeleteExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /expenses/{index} [delete]
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid index number",
		})
	}

	removed, err := h.workspace.Delete(c.Context(), index)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIndex) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to delete expense", zap.Int("index", index), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete expense",
		})
	}

	return c.JSON(dto.DeleteExpenseResponse{Index: index, Removed: removed})
}

// ClearExpenses godoc
// @Summary Delete all expenses
// @Tags expenses
// @Security Bearer
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /expenses [delete]
func (h *ExpenseHandler) ClearExpenses(c *fiber.Ctx) error {
	if err := h.workspace.Clear(c.Context()); err != nil {
		h.logger.Error("Failed to clear expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear expenses",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
