package dataview

import (
	"testing"
	"time"

	"vyapari/internal/core"
)

func TestSummarizeEmptyStore(t *testing.T) {
	s := Summarize(nil, wednesday)
	if s.TotalToday.Paise != 0 || s.TotalMonth.Paise != 0 {
		t.Errorf("empty store totals: %+v", s)
	}
	if s.TopCategory != NoCategory {
		t.Errorf("top category = %q, want %q", s.TopCategory, NoCategory)
	}
	if len(s.PerCategory) != 0 {
		t.Errorf("per-category = %v", s.PerCategory)
	}
}

func TestSummarizeSingleRecord(t *testing.T) {
	s := Summarize([]core.Expense{exp("1", "chai", "food", 100, wednesday)}, wednesday)
	if s.TopCategory != "food" {
		t.Errorf("top category = %q", s.TopCategory)
	}

	s = Summarize([]core.Expense{exp("1", "chai", "", 100, wednesday)}, wednesday)
	if s.TopCategory != Uncategorized {
		t.Errorf("blank category: top = %q, want %q", s.TopCategory, Uncategorized)
	}
}

func TestSummarizeTotals(t *testing.T) {
	yesterday := wednesday.AddDate(0, 0, -1)
	records := []core.Expense{
		exp("1", "groceries", "food", 10000, wednesday),
		exp("2", "shop rent", "rent", 5000, yesterday),
	}
	s := Summarize(records, wednesday)

	if s.TotalToday.Paise != 10000 {
		t.Errorf("total today = %d, want 10000", s.TotalToday.Paise)
	}
	// The "month" card sums the whole store, date filter or not.
	if s.TotalMonth.Paise != 15000 {
		t.Errorf("total month = %d, want 15000", s.TotalMonth.Paise)
	}
	if s.TopCategory != "food" {
		t.Errorf("top category = %q, want food", s.TopCategory)
	}
}

func TestSummarizePerCategoryOrderAndTieBreak(t *testing.T) {
	records := []core.Expense{
		exp("1", "a", "transport", 200, wednesday),
		exp("2", "b", "food", 500, wednesday),
		exp("3", "c", "transport", 300, wednesday),
	}
	s := Summarize(records, wednesday)

	want := []CategoryTotal{
		{Category: "transport", Total: core.Money{Paise: 500}},
		{Category: "food", Total: core.Money{Paise: 500}},
	}
	if len(s.PerCategory) != len(want) {
		t.Fatalf("per-category = %v", s.PerCategory)
	}
	for i := range want {
		if s.PerCategory[i] != want[i] {
			t.Errorf("per-category[%d] = %+v, want %+v", i, s.PerCategory[i], want[i])
		}
	}
	// Equal totals: the category seen first wins.
	if s.TopCategory != "transport" {
		t.Errorf("tie-break: top = %q, want transport", s.TopCategory)
	}
}

func TestSummaryIgnoresFilter(t *testing.T) {
	records := []core.Expense{
		exp("1", "Denim Jeans", "inventory", 10000, wednesday),
		exp("2", "Shop Rent", "rent", 5000, wednesday.AddDate(0, 0, -1)),
	}
	v := DeriveExpenseView(records, ExpenseFilter{Query: "jeans", Range: RangeAll}, DefaultExpenseSort, wednesday, time.Sunday)

	if v.Matched != 1 || len(v.Records) != 1 {
		t.Fatalf("filtered rows: %v", ids(v.Records))
	}
	// Cards still cover both records.
	if v.Summary.TotalMonth.Paise != 15000 {
		t.Errorf("summary total = %d, want 15000", v.Summary.TotalMonth.Paise)
	}
	if v.StoreCount != 2 {
		t.Errorf("store count = %d, want 2", v.StoreCount)
	}
}
