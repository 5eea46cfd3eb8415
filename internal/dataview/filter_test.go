package dataview

import (
	"testing"
	"time"

	"vyapari/internal/core"
)

// Wednesday 2025-06-18, 15:04 local.
var wednesday = time.Date(2025, 6, 18, 15, 4, 0, 0, time.Local)

func exp(id, item, category string, paise int64, date time.Time) core.Expense {
	return core.Expense{ID: id, Item: item, Category: category, Amount: core.Money{Paise: paise}, Date: date}
}

func ids(records []core.Expense) []string {
	out := make([]string, len(records))
	for i, e := range records {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterExpensesQuery(t *testing.T) {
	records := []core.Expense{
		exp("1", "Denim Jeans", "inventory", 100, wednesday),
		exp("2", "Cotton Shirt", "inventory", 100, wednesday),
		exp("3", "Chai for staff", "food", 100, wednesday),
	}

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query matches all in order", "", []string{"1", "2", "3"}},
		{"item substring", "jeans", []string{"1"}},
		{"case insensitive", "DENIM", []string{"1"}},
		{"category substring", "food", []string{"3"}},
		{"matches item or category", "inventory", []string{"1", "2"}},
		{"no match", "electronics", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterExpenses(records, ExpenseFilter{Query: tc.query, Range: RangeAll}, wednesday, time.Sunday)
			if !equalIDs(ids(got), tc.want) {
				t.Errorf("got %v, want %v", ids(got), tc.want)
			}
		})
	}
}

func TestFilterExpensesDateRange(t *testing.T) {
	today := wednesday
	yesterday := wednesday.AddDate(0, 0, -1)
	lastSaturday := wednesday.AddDate(0, 0, -4) // before the most recent Sunday
	lastMonth := wednesday.AddDate(0, -1, 0)
	firstOfMonth := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

	records := []core.Expense{
		exp("today", "a", "", 1, today),
		exp("yesterday", "b", "", 1, yesterday),
		exp("saturday", "c", "", 1, lastSaturday),
		exp("first", "d", "", 1, firstOfMonth),
		exp("old", "e", "", 1, lastMonth),
	}

	cases := []struct {
		rng  DateRange
		want []string
	}{
		{RangeAll, []string{"today", "yesterday", "saturday", "first", "old"}},
		{RangeToday, []string{"today"}},
		{RangeWeek, []string{"today", "yesterday"}}, // week starts Sunday 2025-06-15
		{RangeMonth, []string{"today", "yesterday", "saturday", "first"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.rng), func(t *testing.T) {
			got := FilterExpenses(records, ExpenseFilter{Range: tc.rng}, wednesday, time.Sunday)
			if !equalIDs(ids(got), tc.want) {
				t.Errorf("got %v, want %v", ids(got), tc.want)
			}
		})
	}
}

func TestFilterExpensesConjunctive(t *testing.T) {
	records := []core.Expense{
		exp("1", "Denim Jeans", "", 1, wednesday),
		exp("2", "Denim Jeans", "", 1, wednesday.AddDate(0, -2, 0)),
		exp("3", "Cotton Shirt", "", 1, wednesday),
	}
	got := FilterExpenses(records, ExpenseFilter{Query: "jeans", Range: RangeToday}, wednesday, time.Sunday)
	if !equalIDs(ids(got), []string{"1"}) {
		t.Errorf("predicates must AND together, got %v", ids(got))
	}
}

func TestStartOfWeekConfigurable(t *testing.T) {
	// With a Monday week start, Sunday's records fall outside the week.
	sunday := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	records := []core.Expense{exp("sun", "a", "", 1, sunday)}

	gotSunday := FilterExpenses(records, ExpenseFilter{Range: RangeWeek}, wednesday, time.Sunday)
	if len(gotSunday) != 1 {
		t.Errorf("sunday start: want record included, got %v", ids(gotSunday))
	}
	gotMonday := FilterExpenses(records, ExpenseFilter{Range: RangeWeek}, wednesday, time.Monday)
	if len(gotMonday) != 0 {
		t.Errorf("monday start: want record excluded, got %v", ids(gotMonday))
	}
}

func TestFilterOrders(t *testing.T) {
	orders := []core.Order{
		{ID: "ORD-101", CustomerName: "Asha Patel", Status: core.StatusPending},
		{ID: "ORD-102", CustomerName: "Ravi Kumar", Status: core.StatusCompleted},
		{ID: "ORD-103", CustomerName: "Asha Mehta", Status: core.StatusCompleted},
	}

	cases := []struct {
		name   string
		filter OrderFilter
		want   []string
	}{
		{"all", OrderFilter{Status: "all"}, []string{"ORD-101", "ORD-102", "ORD-103"}},
		{"by customer", OrderFilter{Query: "asha", Status: "all"}, []string{"ORD-101", "ORD-103"}},
		{"by order id", OrderFilter{Query: "102", Status: "all"}, []string{"ORD-102"}},
		{"by status", OrderFilter{Status: "completed"}, []string{"ORD-102", "ORD-103"}},
		{"query and status", OrderFilter{Query: "asha", Status: "completed"}, []string{"ORD-103"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterOrders(orders, tc.filter)
			ids := make([]string, len(got))
			for i, o := range got {
				ids[i] = o.ID
			}
			if !equalIDs(ids, tc.want) {
				t.Errorf("got %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	if r, ok := ParseDateRange(""); !ok || r != RangeAll {
		t.Errorf("empty should default to all, got %q ok=%v", r, ok)
	}
	if r, ok := ParseDateRange("week"); !ok || r != RangeWeek {
		t.Errorf("week: got %q ok=%v", r, ok)
	}
	if _, ok := ParseDateRange("fortnight"); ok {
		t.Error("unknown range should not parse")
	}
}
