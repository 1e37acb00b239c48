package service

import "strings"

// DefaultDenylist is the set of terms that stop a transcript before it
// reaches the LLM.
var DefaultDenylist = []string{
	"violence", "threat", "hate", "illegal", "exploit",
	"abuse", "harm", "weapon", "drug", "racism", "sexually explicit",
}

// Guardrail is a case-insensitive substring pre-filter. It is deliberately
// coarse: "pharmacy" contains "harm" and will be blocked.
type Guardrail struct {
	terms []string
}

func NewGuardrail(terms []string) *Guardrail {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}
	return &Guardrail{terms: lowered}
}

// Check returns the first denylisted term found in text.
func (g *Guardrail) Check(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, term := range g.terms {
		if strings.Contains(lower, term) {
			return term, true
		}
	}
	return "", false
}
