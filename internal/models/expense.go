package models

import "time"

// DateLayout is the on-disk format of Expense.Date.
const DateLayout = "2006-01-02"

// Expense is a confirmed, persisted expense record.
type Expense struct {
	Item     string  `json:"item" db:"item"`
	Amount   float64 `json:"amount" db:"amount"`
	Category string  `json:"category" db:"category"`
	Date     string  `json:"date" db:"date"`
}

// ParsedDate returns the record date; ok is false for records whose date
// cannot be parsed.
func (e Expense) ParsedDate() (time.Time, bool) {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// PendingExpense is an extracted, not yet confirmed line item.
type PendingExpense struct {
	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// PendingBatch holds the result of the latest pipeline run awaiting review.
type PendingBatch []PendingExpense

// Confirm stamps every pending row with date and returns the records to store.
func (b PendingBatch) Confirm(date time.Time) []Expense {
	out := make([]Expense, 0, len(b))
	stamp := date.Format(DateLayout)
	for _, p := range b {
		out = append(out, Expense{
			Item:     p.Item,
			Amount:   p.Amount,
			Category: p.Category,
			Date:     stamp,
		})
	}
	return out
}
