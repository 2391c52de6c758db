package layout

import (
	"strconv"
	"strings"
)

// ParseLineNumber reads a rendered line-number label. Labels tolerate
// surrounding whitespace and an optional leading sign; anything else, or
// a non-positive value, is not a line number.
func ParseLineNumber(label string) (int, bool) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "+")
	// a bare "-" prefix appears on deletion gutters
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
