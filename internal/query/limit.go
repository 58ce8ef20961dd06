package query

import (
	"regexp"
	"strconv"
	"strings"
)

var reCountHint = regexp.MustCompile(`(?:top|best|first|max(?:imum)?|largest|highest|lowest|min(?:imum)?|smallest)\s+(\d+)|(\d+)\s+(?:top|best|max(?:imum)?|largest|highest|lowest|min(?:imum)?|smallest)`)

// CountHint extracts a requested result count like "top 3" or "3 smallest".
// Returns 0 when the query does not ask for a specific count, letting each
// metric fall back to its own default.
func CountHint(queryText string) int {
	m := reCountHint.FindStringSubmatch(strings.ToLower(queryText))
	if m == nil {
		return 0
	}
	text := m[1]
	if text == "" {
		text = m[2]
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}
