package quote

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber builds a quotation number: PREFIX-YYYY-NNN, e.g. Q-2025-007.
func FormatNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

// NextNumber returns the number following the highest sequence already
// issued for prefix and year. Numbers in other formats are ignored.
func NextNumber(prefix string, year int, issued []string) string {
	head := fmt.Sprintf("%s-%d-", prefix, year)
	last := 0
	for _, n := range issued {
		rest, ok := strings.CutPrefix(n, head)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		last = max(last, seq)
	}
	return FormatNumber(prefix, year, last+1)
}
