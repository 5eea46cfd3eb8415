package dataview

import (
	"time"

	"vyapari/internal/core"
)

type (
	// ExpenseView is everything the expense screen renders: the
	// filtered+sorted table rows and the store-wide summary cards.
	ExpenseView struct {
		Records    []core.Expense
		Summary    Summary
		Matched    int
		StoreCount int
	}

	// OrderView is the rendered order list. Orders are not column
	// sorted; the store already holds them newest first.
	OrderView struct {
		Records    []core.Order
		Matched    int
		StoreCount int
	}
)

// DeriveExpenseView recomputes the expense view model from a store
// snapshot. The summary deliberately ignores the filter: stat cards
// reflect the whole store while the table reflects the search.
func DeriveExpenseView(records []core.Expense, f ExpenseFilter, s SortState, now time.Time, weekStart time.Weekday) ExpenseView {
	matched := FilterExpenses(records, f, now, weekStart)
	return ExpenseView{
		Records:    SortExpenses(matched, s),
		Summary:    Summarize(records, now),
		Matched:    len(matched),
		StoreCount: len(records),
	}
}

// DeriveOrderView recomputes the order view model from a store snapshot.
func DeriveOrderView(records []core.Order, f OrderFilter) OrderView {
	matched := FilterOrders(records, f)
	return OrderView{
		Records:    matched,
		Matched:    len(matched),
		StoreCount: len(records),
	}
}
