package service

import (
	"errors"
	"testing"

	"voice-expense/internal/models"
)

func TestParseExtraction_CoffeeExample(t *testing.T) {
	pending, rejected, err := ParseExtraction(`[{"item":"Coffee","amount":5.0,"category":"Food"}]`, defaultCategories())
	if err != nil {
		t.Fatalf("ParseExtraction() error = %v", err)
	}
	if len(rejected) != 0 {
		t.Errorf("rejected = %v", rejected)
	}
	want := models.PendingBatch{{Item: "Coffee", Amount: 5.0, Category: "Food"}}
	if len(pending) != 1 || pending[0] != want[0] {
		t.Errorf("pending = %v, want %v", pending, want)
	}
}

func TestParseExtraction_Malformed(t *testing.T) {
	tests := map[string]string{
		"prose":     "Sure! Here are your expenses.",
		"object":    `{"item":"Coffee","amount":5}`,
		"null":      "null",
		"truncated": `[{"item":"Coffee"`,
		"empty":     "",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseExtraction(raw, defaultCategories())
			if !errors.Is(err, ErrMalformedExtraction) {
				t.Errorf("error = %v, want ErrMalformedExtraction", err)
			}
		})
	}
}

func TestParseExtraction_EmptyList(t *testing.T) {
	pending, rejected, err := ParseExtraction("[]", defaultCategories())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if pending == nil || len(pending) != 0 || len(rejected) != 0 {
		t.Errorf("pending = %#v, rejected = %v", pending, rejected)
	}
}

func TestParseExtraction_CodeFence(t *testing.T) {
	raw := "```json\n[{\"item\":\"Taxi\",\"amount\":15.5,\"category\":\"Transport\"}]\n```"
	pending, _, err := ParseExtraction(raw, defaultCategories())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(pending) != 1 || pending[0].Item != "Taxi" {
		t.Errorf("pending = %v", pending)
	}
}

func TestParseExtraction_Amounts(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   float64
		reason string
	}{
		{"integer", `12`, 12, ""},
		{"float", `15.50`, 15.5, ""},
		{"numeric string", `"7.25"`, 7.25, ""},
		{"currency string", `" $1,250.50 "`, 1250.5, ""},
		{"zero", `0`, 0, ""},
		{"word", `"five"`, 0, reasonInvalidAmount},
		{"missing", ``, 0, reasonInvalidAmount},
		{"null", `null`, 0, reasonInvalidAmount},
		{"bool", `true`, 0, reasonInvalidAmount},
		{"negative", `-3`, 0, reasonNegative},
		{"negative string", `"-3.00"`, 0, reasonNegative},
		{"overflow", `1e400`, 0, reasonInvalidAmount},
		{"overflow string", `"$1e400"`, 0, reasonInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `[{"item":"Thing","category":"Retail"}]`
			if tt.amount != "" {
				raw = `[{"item":"Thing","amount":` + tt.amount + `,"category":"Retail"}]`
			}
			pending, rejected, err := ParseExtraction(raw, defaultCategories())
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if tt.reason != "" {
				if len(pending) != 0 || len(rejected) != 1 || rejected[0].Reason != tt.reason {
					t.Errorf("pending = %v, rejected = %v, want rejection %q", pending, rejected, tt.reason)
				}
				return
			}
			if len(pending) != 1 || pending[0].Amount != tt.want {
				t.Errorf("pending = %v, want amount %v", pending, tt.want)
			}
		})
	}
}

func TestParseExtraction_RejectsBadElementsKeepsGood(t *testing.T) {
	raw := `[
		"Coffee",
		{"item":"  ","amount":3,"category":"Food"},
		{"amount":3,"category":"Food"},
		{"item":"Snack","amount":"two","category":"Food"},
		{"item":" Groceries ","amount":50,"category":"food"}
	]`
	pending, rejected, err := ParseExtraction(raw, defaultCategories())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(pending) != 1 || pending[0].Item != "Groceries" || pending[0].Category != "Food" {
		t.Errorf("pending = %v", pending)
	}

	wantReasons := []string{reasonNotObject, reasonMissingItem, reasonMissingItem, reasonInvalidAmount}
	if len(rejected) != len(wantReasons) {
		t.Fatalf("rejected = %v", rejected)
	}
	for i, r := range rejected {
		if r.Index != i || r.Reason != wantReasons[i] {
			t.Errorf("rejected[%d] = %+v, want index %d reason %q", i, r, i, wantReasons[i])
		}
	}
}

func TestParseExtraction_FieldTypes(t *testing.T) {
	raw := `[
		{"item":42,"amount":3,"category":"Food"},
		{"item":"Bus","amount":2,"category":7},
		{"item":"Tea","amount":1,"category":null}
	]`
	pending, rejected, err := ParseExtraction(raw, defaultCategories())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(rejected) != 1 || rejected[0].Index != 0 || rejected[0].Reason != reasonItemNotString {
		t.Errorf("rejected = %v, want item 0 rejected as %q", rejected, reasonItemNotString)
	}
	if len(pending) != 2 || pending[0].Category != "Retail" || pending[1].Category != "Other" {
		t.Errorf("pending = %v, want numeric category as Retail and null as Other", pending)
	}
}

func TestParseExtraction_CategoryNormalization(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Food", "Food"},
		{"TRANSPORT", "Transport"},
		{"personal care", "Personal Care"},
		{"", "Other"},
		{"Pets", "Retail"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			raw := `[{"item":"x","amount":1,"category":"` + tt.category + `"}]`
			pending, _, err := ParseExtraction(raw, defaultCategories())
			if err != nil || len(pending) != 1 {
				t.Fatalf("pending = %v, err = %v", pending, err)
			}
			if pending[0].Category != tt.want {
				t.Errorf("category %q -> %q, want %q", tt.category, pending[0].Category, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount("-1"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("ParseAmount(-1) error = %v, want ErrInvalidAmount", err)
	}
	if got, err := ParseAmount("$ 4.99"); err != nil || got != 4.99 {
		t.Errorf("ParseAmount($ 4.99) = %v, %v", got, err)
	}
	if _, err := ParseAmount("$"); err == nil {
		t.Error("expected error for bare currency sign")
	}
	if _, err := ParseAmount("1e400"); err == nil {
		t.Error("expected error for an amount beyond float64 range")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		"[]":                   "[]",
		"```json\n[1]\n```":    "[1]",
		"```\n[2]\n```":        "[2]",
		"```json[3]```":        "[3]",
		"  \n```JSON\n[4]```  ": "[4]",
	}
	for in, want := range tests {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanItem(t *testing.T) {
	tests := map[string]string{
		"  Coffee ":     "Coffee",
		"Oat\t milk\n": "Oat milk",
		"Tea\xff bags": "Tea bags",
		"":              "",
	}
	for in, want := range tests {
		if got := cleanItem(in); got != want {
			t.Errorf("cleanItem(%q) = %q, want %q", in, got, want)
		}
	}
}
