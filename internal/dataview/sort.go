package dataview

import (
	"sort"
	"strings"

	"vyapari/internal/core"
)

const (
	SortByExpenseID SortKey = "expenseId"
	SortByItem      SortKey = "item"
	SortByCategory  SortKey = "category"
	SortByDate      SortKey = "date"
	SortByAmount    SortKey = "amount"

	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type (
	SortKey   string
	Direction string

	// SortState is the single active column sort of a list screen.
	SortState struct {
		Key SortKey
		Dir Direction
	}
)

// DefaultExpenseSort is the sort applied when the expense screen first
// loads: newest records on top.
var DefaultExpenseSort = SortState{Key: SortByDate, Dir: Descending}

// ParseSortKey validates a sort parameter value.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByExpenseID, SortByItem, SortByCategory, SortByDate, SortByAmount:
		return SortKey(s), true
	}
	return "", false
}

// Toggle returns the state after a header click on key: the same column
// flips ascending to descending and back, a different column resets to
// ascending on the new column.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key && s.Dir == Ascending {
		return SortState{Key: key, Dir: Descending}
	}
	return SortState{Key: key, Dir: Ascending}
}

// SortExpenses returns a new slice ordered by the given key. Records
// with an undefined value for the key (only the display expense ID can
// be absent) sort after every record with a defined value regardless of
// direction. Defined-vs-defined ties keep their relative input order.
func SortExpenses(subset []core.Expense, s SortState) []core.Expense {
	out := make([]core.Expense, len(subset))
	copy(out, subset)
	if s.Key == "" {
		return out
	}
	desc := s.Dir == Descending
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		aOK, bOK := defined(a, s.Key), defined(b, s.Key)
		if aOK != bOK {
			// Missing sorts last either way; the direction flip below
			// applies only to defined-vs-defined comparisons.
			return aOK
		}
		if !aOK {
			return false
		}
		c := compareByKey(a, b, s.Key)
		if desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func defined(e core.Expense, key SortKey) bool {
	if key == SortByExpenseID {
		return e.ExpenseID != ""
	}
	return true
}

func compareByKey(a, b core.Expense, key SortKey) int {
	switch key {
	case SortByExpenseID:
		return strings.Compare(a.ExpenseID, b.ExpenseID)
	case SortByItem:
		return strings.Compare(a.Item, b.Item)
	case SortByCategory:
		return strings.Compare(a.Category, b.Category)
	case SortByDate:
		return a.Date.Compare(b.Date)
	case SortByAmount:
		switch {
		case a.Amount.Paise < b.Amount.Paise:
			return -1
		case a.Amount.Paise > b.Amount.Paise:
			return 1
		}
	}
	return 0
}
