package quote

import (
	"fmt"
	"strings"
	"time"
)

type DateRange string

const (
	DateAll       DateRange = "all"
	DateThisMonth DateRange = "this_month"
	DateLastMonth DateRange = "last_month"
)

func ParseDateRange(s string) (DateRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return DateAll, nil
	case "this_month", "thismonth":
		return DateThisMonth, nil
	case "last_month", "lastmonth":
		return DateLastMonth, nil
	default:
		return "", fmt.Errorf("unknown date range %q", s)
	}
}

// ListFilter selects saved quotations. Zero values select everything.
type ListFilter struct {
	Search string
	Status Status
	Date   DateRange
	Now    time.Time
}

func (f ListFilter) Match(q Quotation) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(q.Number), term) &&
			!strings.Contains(strings.ToLower(q.CustomerName()), term) {
			return false
		}
	}
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	switch f.Date {
	case DateThisMonth:
		return sameMonth(q.CreatedAt, f.now())
	case DateLastMonth:
		now := f.now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return sameMonth(q.CreatedAt, first.AddDate(0, -1, 0))
	}
	return true
}

func (f ListFilter) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

func FilterQuotations(qs []Quotation, f ListFilter) []Quotation {
	out := make([]Quotation, 0, len(qs))
	for _, q := range qs {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}

func sameMonth(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}
