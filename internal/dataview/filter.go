// Package dataview derives the rendered view model of a list screen from
// a record store snapshot: a stable filter pass, a single-key sort pass,
// and summary aggregation over the unfiltered store. All functions are
// pure; the caller supplies the clock so behavior is reproducible.
package dataview

import (
	"strings"
	"time"

	"vyapari/internal/core"
)

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

type (
	// DateRange narrows expense records by date of occurrence. RangeAll
	// is a no-op. The ranges are half-open upward: "week" and "month"
	// have no upper bound, so the current day is always included.
	DateRange string

	// ExpenseFilter holds the predicates of the expense screen. The
	// query and the date range are independent and combined with AND.
	ExpenseFilter struct {
		Query string
		Range DateRange
	}

	// OrderFilter holds the predicates of the order screen. Status
	// "all" matches every record.
	OrderFilter struct {
		Query  string
		Status string
	}
)

// ParseDateRange validates a date-range parameter value. Unknown values
// fall back to RangeAll with ok=false.
func ParseDateRange(s string) (DateRange, bool) {
	switch DateRange(s) {
	case RangeAll, RangeToday, RangeWeek, RangeMonth:
		return DateRange(s), true
	case "":
		return RangeAll, true
	}
	return RangeAll, false
}

// FilterExpenses returns the subset of records matching the filter,
// preserving input order. The query is a case-insensitive substring
// match against item OR category; an empty query matches everything.
// weekStart configures which weekday RangeWeek snaps back to.
func FilterExpenses(records []core.Expense, f ExpenseFilter, now time.Time, weekStart time.Weekday) []core.Expense {
	out := make([]core.Expense, 0, len(records))
	q := strings.ToLower(f.Query)
	for _, e := range records {
		if !inRange(e.Date, f.Range, now, weekStart) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Item), q) &&
			!strings.Contains(strings.ToLower(e.Category), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterOrders returns the subset of records matching the filter,
// preserving input order. The query matches customer name OR order ID.
func FilterOrders(records []core.Order, f OrderFilter) []core.Order {
	out := make([]core.Order, 0, len(records))
	q := strings.ToLower(f.Query)
	for _, o := range records {
		if f.Status != "" && f.Status != "all" && string(o.Status) != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), q) &&
			!strings.Contains(strings.ToLower(o.ID), q) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func inRange(d time.Time, r DateRange, now time.Time, weekStart time.Weekday) bool {
	switch r {
	case RangeToday:
		return sameDay(d, now)
	case RangeWeek:
		return !d.Before(startOfWeek(now, weekStart))
	case RangeMonth:
		return !d.Before(startOfMonth(now))
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfWeek returns local midnight of the most recent weekStart day,
// counting now's own day as "most recent" when they coincide.
func startOfWeek(now time.Time, weekStart time.Weekday) time.Time {
	back := int(now.Weekday()) - int(weekStart)
	if back < 0 {
		back += 7
	}
	y, m, d := now.AddDate(0, 0, -back).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func startOfMonth(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}
