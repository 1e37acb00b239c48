package handlers

import (
	"errors"

	"voice-expense/internal/dto"
	"voice-expense/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	workspace *service.Workspace
	logger    *zap.Logger
}

func NewCategoryHandler(workspace *service.Workspace, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.CategoriesResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(dto.CategoriesResponse{Categories: h.workspace.Categories()})
}

// AddCategory godoc
// @Summary Add a category
// @Description The new category is offered to the LLM from the next run on.
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.AddCategoryRequest true "Category"
// @Security Bearer
// @Success 201 {object} dto.CategoriesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) AddCategory(c *fiber.Ctx) error {
	var req dto.AddCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	categories, err := h.workspace.AddCategory(req.Name)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrCategoryExists) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CategoriesResponse{Categories: categories})
}
