package dto

import (
	"voice-expense/internal/models"
	"voice-expense/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ModelsResponse struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}

type PendingResponse struct {
	Pending []models.PendingExpense `json:"pending"`
	Count   int                     `json:"count"`
}

type PendingExpenseRequest struct {
	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

type ReplacePendingRequest struct {
	Rows []PendingExpenseRequest `json:"rows"`
}

// PatchPendingRequest edits one review row; omitted fields are kept.
type PatchPendingRequest struct {
	Item     *string  `json:"item,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
	Category *string  `json:"category,omitempty"`
}

type ConfirmResponse struct {
	Saved        []models.Expense `json:"saved"`
	Count        int              `json:"count"`
	HistoryCount int              `json:"history_count"`
}

type ExpenseListResponse struct {
	Timeframe service.Timeframe        `json:"timeframe"`
	Label     string                   `json:"label"`
	Expenses  []service.IndexedExpense `json:"expenses"`
	Count     int                      `json:"count"`
}

type SummaryResponse struct {
	service.Summary
	Label string `json:"label"`
}

type DeleteExpenseResponse struct {
	Index   int            `json:"index"`
	Removed models.Expense `json:"removed"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type AddCategoryRequest struct {
	Name string `json:"name"`
}
