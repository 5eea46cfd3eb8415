package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"vyapari/internal/backend"
	"vyapari/internal/core"
	"vyapari/internal/dataview"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "Response encode failed", "error", err, "url", r.URL.Path)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, errorResponse{Error: msg})
}

// respondBackendError maps a store/backend failure onto the JSON
// surface: validation problems are the caller's fault, missing records
// are 404, anything else surfaces as a bad gateway because the real
// failure happened upstream.
func respondBackendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, backend.ErrValidation),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyItem),
		errors.Is(err, core.ErrInvalidQuantity),
		errors.Is(err, core.ErrInvalidStatus):
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, backend.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "record not found")
	default:
		slog.ErrorContext(r.Context(), "Backend request failed", "error", err, "url", r.URL.Path)
		respondError(w, r, http.StatusBadGateway, "backend request failed")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// confirmed reports whether the request carries the explicit delete
// confirmation token. A missing token means the user backed out of the
// confirmation dialog, so the handler must not touch the backend.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseExpenseQuery reads the expense screen's state out of the query
// string. Unknown range or sort values fall back to the defaults.
func parseExpenseQuery(r *http.Request) (dataview.ExpenseFilter, dataview.SortState) {
	q := r.URL.Query()

	rng, _ := dataview.ParseDateRange(q.Get("range"))
	f := dataview.ExpenseFilter{
		Query: strings.TrimSpace(q.Get("q")),
		Range: rng,
	}

	s := dataview.DefaultExpenseSort
	if key, ok := dataview.ParseSortKey(q.Get("sort")); ok {
		s.Key = key
		s.Dir = dataview.Ascending
		if q.Get("dir") == string(dataview.Descending) {
			s.Dir = dataview.Descending
		}
	}
	return f, s
}

func parseOrderQuery(r *http.Request) dataview.OrderFilter {
	q := r.URL.Query()
	status := strings.ToLower(strings.TrimSpace(q.Get("status")))
	if status == "" {
		status = "all"
	}
	return dataview.OrderFilter{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: status,
	}
}
