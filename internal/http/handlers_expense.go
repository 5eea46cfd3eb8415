package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"vyapari/internal/core"
	"vyapari/internal/dataview"
	"vyapari/internal/export"
)

type expenseJSON struct {
	ID        string `json:"id"`
	ExpenseID string `json:"expenseId"`
	Item      string `json:"item"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
}

type categoryTotalJSON struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type summaryJSON struct {
	TotalToday  string              `json:"totalToday"`
	TotalMonth  string              `json:"totalMonth"`
	PerCategory []categoryTotalJSON `json:"perCategory"`
	TopCategory string              `json:"topCategory"`
}

type expenseListJSON struct {
	Records    []expenseJSON `json:"records"`
	Summary    summaryJSON   `json:"summary"`
	Matched    int           `json:"matched"`
	StoreCount int           `json:"storeCount"`
}

type expenseDraftJSON struct {
	Item     string `json:"item"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:        e.ID,
		ExpenseID: e.ExpenseID,
		Item:      e.Item,
		Category:  e.Category,
		Amount:    e.Amount.DecimalString(),
		Date:      e.Date.Format("2006-01-02"),
	}
}

func toSummaryJSON(s dataview.Summary) summaryJSON {
	out := summaryJSON{
		TotalToday:  s.TotalToday.DecimalString(),
		TotalMonth:  s.TotalMonth.DecimalString(),
		PerCategory: make([]categoryTotalJSON, 0, len(s.PerCategory)),
		TopCategory: s.TopCategory,
	}
	for _, ct := range s.PerCategory {
		out.PerCategory = append(out.PerCategory, categoryTotalJSON{
			Category: ct.Category,
			Total:    ct.Total.DecimalString(),
		})
	}
	return out
}

// expenseView derives the screen's view model, memoized per snapshot
// version, calendar day, and query state. The version must come from
// the same Snapshot call that produced the records so a concurrent
// replacement cannot cache a view under the wrong key.
func (s *Server) expenseView(records []core.Expense, version int64, f dataview.ExpenseFilter, st dataview.SortState) dataview.ExpenseView {
	now := s.now()
	key := fmt.Sprintf("v%d|%s|%q|%s|%s|%s", version, now.Format("2006-01-02"), f.Query, f.Range, st.Key, st.Dir)
	if cached, ok := s.viewCache.Get(key); ok {
		return cached
	}
	view := dataview.DeriveExpenseView(records, f, st, now, s.weekStart)
	s.viewCache.Set(key, view)
	return view
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records, version, err := s.expenses.Snapshot(r.Context())
	if err != nil {
		respondBackendError(w, r, err)
		return
	}

	filter, sortState := parseExpenseQuery(r)
	view := s.expenseView(records, version, filter, sortState)

	resp := expenseListJSON{
		Records:    make([]expenseJSON, 0, len(view.Records)),
		Summary:    toSummaryJSON(view.Summary),
		Matched:    view.Matched,
		StoreCount: view.StoreCount,
	}
	for _, e := range view.Records {
		resp.Records = append(resp.Records, toExpenseJSON(e))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.readExpenseDraft(w, r)
	if !ok {
		return
	}

	if err := s.expenses.Create(r.Context(), draft); err != nil {
		respondBackendError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense created",
		"item", draft.Item,
		"category", draft.Category,
		"amount_paise", draft.Amount.Paise)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	draft, ok := s.readExpenseDraft(w, r)
	if !ok {
		return
	}

	if err := s.expenses.Update(r.Context(), id, draft); err != nil {
		respondBackendError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense updated", "id", id, "item", draft.Item)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		respondError(w, r, http.StatusPreconditionRequired, "deletion requires confirm=true")
		return
	}
	id := r.PathValue("id")

	if err := s.expenses.Delete(r.Context(), id); err != nil {
		respondBackendError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleExportExpenses streams the currently filtered and sorted view
// as CSV, not the raw store.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	records, version, err := s.expenses.Snapshot(r.Context())
	if err != nil {
		respondBackendError(w, r, err)
		return
	}

	filter, sortState := parseExpenseQuery(r)
	rows := s.expenseView(records, version, filter, sortState).Records

	filename := export.Filename(filter.Range, s.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteExpensesCSV(w, rows); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

// readExpenseDraft decodes and validates the create/update payload. It
// writes the error response itself and reports ok=false on failure.
func (s *Server) readExpenseDraft(w http.ResponseWriter, r *http.Request) (core.ExpenseDraft, bool) {
	var in expenseDraftJSON
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return core.ExpenseDraft{}, false
	}

	paise, err := core.ParseDecimalToPaise(in.Amount)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "invalid amount")
		return core.ExpenseDraft{}, false
	}

	draft := core.ExpenseDraft{
		Item:     sanitizeInput(in.Item),
		Category: sanitizeInput(in.Category),
		Amount:   core.Money{Paise: paise},
	}
	if err := draft.Validate(); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
		return core.ExpenseDraft{}, false
	}
	return draft, true
}
