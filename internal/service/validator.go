package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"voice-expense/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedExtraction = errors.New("LLM output is not a JSON array")
	ErrInvalidAmount       = errors.New("amount must be a non-negative number")
)

const (
	reasonNotObject     = "element is not an object"
	reasonMissingItem   = "item is missing or blank"
	reasonItemNotString = "item is not a string"
	reasonInvalidAmount = "amount is missing or not a number"
	reasonNegative      = "amount is negative"
)

// ParseExtraction turns raw LLM output into pending rows. Output that is not
// a JSON array is an error; individual bad elements are reported as
// rejections and skipped.
func ParseExtraction(raw string, categories models.CategorySet) (models.PendingBatch, []models.Rejection, error) {
	body := stripCodeFence(raw)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(body), &elements); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedExtraction, err)
	}
	if elements == nil {
		// literal null
		return nil, nil, ErrMalformedExtraction
	}

	pending := models.PendingBatch{}
	var rejected []models.Rejection
	reject := func(i int, reason string, el json.RawMessage) {
		rejected = append(rejected, models.Rejection{Index: i, Reason: reason, Raw: string(el)})
	}

	for i, el := range elements {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(el, &fields); err != nil || fields == nil {
			reject(i, reasonNotObject, el)
			continue
		}

		var item string
		if v, ok := fields["item"]; ok {
			if err := json.Unmarshal(v, &item); err != nil {
				reject(i, reasonItemNotString, el)
				continue
			}
		}
		item = cleanItem(item)
		if item == "" {
			reject(i, reasonMissingItem, el)
			continue
		}

		amount, err := parseAmountJSON(fields["amount"])
		if err != nil {
			reason := reasonInvalidAmount
			if errors.Is(err, ErrInvalidAmount) {
				reason = reasonNegative
			}
			reject(i, reason, el)
			continue
		}

		category := categoryText(fields["category"])

		pending = append(pending, models.PendingExpense{
			Item:     item,
			Amount:   amount,
			Category: categories.Normalize(category),
		})
	}

	return pending, rejected, nil
}

// categoryText reads the category field. Non-string values keep their JSON
// text so they normalize as an unknown category rather than a blank one.
func categoryText(raw json.RawMessage) string {
	var category string
	if err := json.Unmarshal(raw, &category); err == nil {
		return category
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}

func parseAmountJSON(raw json.RawMessage) (float64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return 0, errors.New("amount is missing")
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return ParseAmount(s)
	}
	return ParseAmount(text)
}

// ParseAmount accepts plain decimals and the currency-styled strings models
// tend to emit ("$1,250.50"). Negative values fail with ErrInvalidAmount;
// values outside the float64 range are rejected.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("amount is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	return f, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
