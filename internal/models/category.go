package models

import "strings"

const (
	CategoryRetail = "Retail"
	CategoryOther  = "Other"
)

// CategorySet is an ordered, append-only list of category names.
type CategorySet []string

func NewCategorySet(names []string) CategorySet {
	set := make(CategorySet, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" && !set.Contains(n) {
			set = append(set, n)
		}
	}
	return set
}

// Contains is an exact membership check.
func (s CategorySet) Contains(name string) bool {
	for _, c := range s {
		if c == name {
			return true
		}
	}
	return false
}

// Lookup finds name ignoring case and returns the canonical spelling.
func (s CategorySet) Lookup(name string) (string, bool) {
	for _, c := range s {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// With returns a copy of the set with name appended.
func (s CategorySet) With(name string) CategorySet {
	out := make(CategorySet, len(s), len(s)+1)
	copy(out, s)
	return append(out, name)
}

// Normalize maps a model-supplied category into the set: a case-insensitive
// match keeps the set's spelling, blank falls back to Other, anything else
// to Retail.
func (s CategorySet) Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.fallback(CategoryOther)
	}
	if c, ok := s.Lookup(name); ok {
		return c
	}
	return s.fallback(CategoryRetail)
}

func (s CategorySet) fallback(name string) string {
	if c, ok := s.Lookup(name); ok {
		return c
	}
	// custom seeds may omit the fallbacks; keep the record in the set anyway
	if len(s) > 0 {
		return s[len(s)-1]
	}
	return name
}
