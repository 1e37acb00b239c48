package service

import (
	"strings"
)

// cleanItem drops invalid UTF-8 and collapses runs of whitespace in an item
// name. Both SQL backends reject invalid byte sequences in TEXT columns.
func cleanItem(s string) string {
	return strings.Join(strings.Fields(strings.ToValidUTF8(s, "")), " ")
}
