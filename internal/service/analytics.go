package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"voice-expense/internal/models"

	"github.com/shopspring/decimal"
)

var ErrUnknownTimeframe = errors.New("unknown timeframe")

type Timeframe string

const (
	TimeframeAll       Timeframe = "all"
	TimeframeLast7Days Timeframe = "last_7_days"
	TimeframeThisMonth Timeframe = "this_month"
	TimeframeThisYear  Timeframe = "this_year"
)

var timeframeLabels = map[Timeframe]string{
	TimeframeAll:       "All Time",
	TimeframeLast7Days: "Last 7 Days",
	TimeframeThisMonth: "This Month",
	TimeframeThisYear:  "This Year",
}

// Timeframes lists the accepted values in display order.
var Timeframes = []Timeframe{TimeframeAll, TimeframeLast7Days, TimeframeThisMonth, TimeframeThisYear}

// ParseTimeframe accepts both the key ("this_month") and the label
// ("This Month"). Empty means all.
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeframeAll, nil
	}
	for _, tf := range Timeframes {
		if strings.EqualFold(s, string(tf)) || strings.EqualFold(s, tf.Label()) {
			return tf, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
}

func (t Timeframe) Label() string {
	return timeframeLabels[t]
}

// Start returns the first day included in the timeframe. ok is false for all.
func (t Timeframe) Start(now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch t {
	case TimeframeLast7Days:
		return today.AddDate(0, 0, -7), true
	case TimeframeThisMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), true
	case TimeframeThisYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

// IndexedExpense is a history record together with its 1-based position in
// the full history, which is what Delete takes.
type IndexedExpense struct {
	Index int `json:"index"`
	models.Expense
}

// FilterHistory returns the records dated on or after the timeframe start.
// Records with an unreadable date only appear under all.
func FilterHistory(history []models.Expense, tf Timeframe, now time.Time) []IndexedExpense {
	start, bounded := tf.Start(now)

	rows := make([]IndexedExpense, 0, len(history))
	for i, e := range history {
		if bounded {
			d, ok := e.ParsedDate()
			if !ok || d.Before(start) {
				continue
			}
		}
		rows = append(rows, IndexedExpense{Index: i + 1, Expense: e})
	}
	return rows
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

type Summary struct {
	Timeframe  Timeframe       `json:"timeframe"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// Summarize totals rows exactly, per category sorted by name.
func Summarize(tf Timeframe, rows []IndexedExpense) Summary {
	totals := make(map[string]*CategoryTotal)
	sum := decimal.Zero

	for _, r := range rows {
		amount := decimal.NewFromFloat(r.Amount)
		sum = sum.Add(amount)

		ct, ok := totals[r.Category]
		if !ok {
			ct = &CategoryTotal{Category: r.Category, Total: decimal.Zero}
			totals[r.Category] = ct
		}
		ct.Total = ct.Total.Add(amount)
		ct.Count++
	}

	byCategory := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		byCategory = append(byCategory, *ct)
	}
	sort.Slice(byCategory, func(i, j int) bool {
		return byCategory[i].Category < byCategory[j].Category
	})

	return Summary{
		Timeframe:  tf,
		Count:      len(rows),
		Total:      sum,
		ByCategory: byCategory,
	}
}
