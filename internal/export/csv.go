// Package export serializes expense views into downloadable artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"vyapari/internal/core"
	"vyapari/internal/dataview"
)

// csvHeader is the fixed column order of the expense export.
var csvHeader = []string{"Expense ID", "Date", "Item/Reason", "Category", "Amount"}

// WriteExpensesCSV writes the given records, already filtered and
// sorted by the caller, as UTF-8 CSV. The date is rendered day-first
// and an absent display number becomes "N/A".
func WriteExpensesCSV(w io.Writer, records []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range records {
		id := e.ExpenseID
		if id == "" {
			id = "N/A"
		}
		row := []string{
			id,
			e.Date.Format("02/01/2006"),
			e.Item,
			e.Category,
			e.Amount.DecimalString(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds the download name for an export taken under the
// given date filter, e.g. "expenses-month-2025-06-18.csv".
func Filename(r dataview.DateRange, now time.Time) string {
	return fmt.Sprintf("expenses-%s-%s.csv", r, now.Format("2006-01-02"))
}
