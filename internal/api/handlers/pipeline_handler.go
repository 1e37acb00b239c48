package handlers

import (
	"errors"
	"os"

	"voice-expense/internal/dto"
	"voice-expense/internal/models"
	"voice-expense/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PipelineHandler struct {
	workspace *service.Workspace
	models    service.ModelCatalog
	uploadDir string
	logger    *zap.Logger
}

func NewPipelineHandler(workspace *service.Workspace, models service.ModelCatalog, uploadDir string, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{
		workspace: workspace,
		models:    models,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// ListModels godoc
// @Summary List transcription models
// @Description Values accepted by the model field of a pipeline run.
// @Tags pipeline
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ModelsResponse
// @Router /pipeline/models [get]
func (h *PipelineHandler) ListModels(c *fiber.Ctx) error {
	return c.JSON(dto.ModelsResponse{
		Default: h.models.DefaultModel(),
		Models:  h.models.Models(),
	})
}

// RunPipeline godoc
// @Summary Extract expenses from a voice note
// @Description Transcribe -> guardrail -> LLM extraction -> validation. Replaces the pending batch.
// @Tags pipeline
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Voice note (mp3, wav, m4a)"
// @Param model formData string false "Transcription model"
// @Security Bearer
// @Success 200 {object} models.RunResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} models.RunResult
// @Failure 502 {object} models.RunResult
// @Router /pipeline/run [post]
func (h *PipelineHandler) RunPipeline(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}
	if err := service.CheckAudioExtension(file.Filename); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	path, err := service.SaveUpload(h.uploadDir, file.Filename, src)
	if err != nil {
		h.logger.Error("Failed to store upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store upload",
		})
	}
	defer os.Remove(path)

	result := h.workspace.Run(c.Context(), path, c.FormValue("model"))
	h.logger.Info("Pipeline run finished",
		zap.String("file", file.Filename),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("pending", len(result.Pending)),
	)

	return c.Status(statusForOutcome(result)).JSON(result)
}

func statusForOutcome(result models.RunResult) int {
	switch result.Outcome {
	case models.OutcomeBlocked:
		return fiber.StatusUnprocessableEntity
	case models.OutcomeTranscriptionFailed:
		if service.IsClientError(result.Err) {
			return fiber.StatusBadRequest
		}
		return fiber.StatusBadGateway
	case models.OutcomeLLMUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusOK
	}
}

// GetPending godoc
// @Summary Get the pending batch
// @Tags pending
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.PendingResponse
// @Router /pending [get]
func (h *PipelineHandler) GetPending(c *fiber.Ctx) error {
	return c.JSON(pendingResponse(h.workspace.Pending()))
}

// ReplacePending godoc
// @Summary Replace the pending batch
// @Description Overwrites the review grid. Categories must exist; amounts must be >= 0.
// @Tags pending
// @Accept json
// @Produce json
// @Param request body dto.ReplacePendingRequest true "Rows"
// @Security Bearer
// @Success 200 {object} dto.PendingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /pending [put]
func (h *PipelineHandler) ReplacePending(c *fiber.Ctx) error {
	var req dto.ReplacePendingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rows := make([]models.PendingExpense, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, models.PendingExpense{Item: r.Item, Amount: r.Amount, Category: r.Category})
	}

	batch, err := h.workspace.ReplacePending(rows)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(pendingResponse(batch))
}

// PatchPending godoc
// @Summary Edit one pending row
// @Tags pending
// @Accept json
// @Produce json
// @Param row path int true "1-based row"
// @Param request body dto.PatchPendingRequest true "Fields to change"
// @Security Bearer
// @Success 200 {object} models.PendingExpense
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pending/{row} [patch]
func (h *PipelineHandler) PatchPending(c *fiber.Ctx) error {
	row, err := c.ParamsInt("row")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid row number",
		})
	}

	var req dto.PatchPendingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updated, err := h.workspace.PatchPending(row, service.PendingPatch{
		Item:     req.Item,
		Amount:   req.Amount,
		Category: req.Category,
	})
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrInvalidPendingRow) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(updated)
}

// DiscardPending godoc
// @Summary Drop the pending batch
// @Tags pending
// @Security Bearer
// @Success 204
// @Router /pending [delete]
func (h *PipelineHandler) DiscardPending(c *fiber.Ctx) error {
	h.workspace.DiscardPending()
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmPending godoc
// @Summary Confirm and save the pending batch
// @Description Stamps every pending row with today's date and appends it to history. Nothing pending is a no-op.
// @Tags pending
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ConfirmResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /pending/confirm [post]
func (h *PipelineHandler) ConfirmPending(c *fiber.Ctx) error {
	saved, err := h.workspace.Confirm(c.Context())
	if err != nil {
		h.logger.Error("Failed to confirm expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save expenses",
		})
	}

	return c.JSON(dto.ConfirmResponse{
		Saved:        saved,
		Count:        len(saved),
		HistoryCount: len(h.workspace.State().History),
	})
}

func pendingResponse(batch models.PendingBatch) dto.PendingResponse {
	if batch == nil {
		batch = models.PendingBatch{}
	}
	return dto.PendingResponse{Pending: batch, Count: len(batch)}
}
