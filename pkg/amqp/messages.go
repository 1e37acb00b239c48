package amqp

import (
	"encoding/json"
	"time"

	"voice-expense/internal/models"

	"github.com/google/uuid"
)

// Actions carried by HistoryChangedMessage.
const (
	ActionConfirm = "confirm"
	ActionDelete  = "delete"
	ActionClear   = "clear"
)

// HistoryChangedMessage is published after the persisted history changes.
// Expenses holds the records that were added or removed; Count is the
// history length afterwards.
type HistoryChangedMessage struct {
	ID        string           `json:"id"`
	Action    string           `json:"action"`
	Count     int              `json:"count"`
	Expenses  []models.Expense `json:"expenses"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewHistoryChangedMessage(action string, count int, expenses []models.Expense) *HistoryChangedMessage {
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return &HistoryChangedMessage{
		ID:        uuid.New().String(),
		Action:    action,
		Count:     count,
		Expenses:  expenses,
		Timestamp: time.Now().UTC(),
	}
}

func (m *HistoryChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
