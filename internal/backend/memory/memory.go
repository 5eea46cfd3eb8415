// Package memory is an in-process stand-in for the external backend,
// used for local development and tests. It mimics the API's behavior
// closely enough for the dashboard: issued IDs, display numbers, and
// the derived financial breakdown of orders.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vyapari/internal/backend"
	"vyapari/internal/core"
)

type Store struct {
	mu         sync.Mutex
	expenses   []core.Expense
	orders     []core.Order
	expenseSeq int
	orderSeq   int
}

func New() *Store {
	return &Store{expenseSeq: 1000, orderSeq: 100}
}

var (
	_ backend.ExpenseSource = (*Store)(nil)
	_ backend.OrderSource   = (*Store)(nil)
)

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *Store) CreateExpense(_ context.Context, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("%w: %v", backend.ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenseSeq++
	e := core.Expense{
		ID:        uuid.NewString(),
		ExpenseID: fmt.Sprintf("EXP-%d", s.expenseSeq),
		Item:      draft.Item,
		Category:  draft.Category,
		Amount:    draft.Amount,
		Date:      time.Now(),
	}
	s.expenses = append(s.expenses, e)
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, id string, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("%w: %v", backend.ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			e.Item = draft.Item
			e.Category = draft.Category
			e.Amount = draft.Amount
			s.expenses[i] = e
			return e, nil
		}
	}
	return core.Expense{}, backend.ErrNotFound
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return backend.ErrNotFound
}

func (s *Store) ListOrders(_ context.Context) ([]core.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Order(nil), s.orders...), nil
}

// CreateOrder derives the financial breakdown the way the real backend
// does: gross = rate*qty, discount from the free-text field ("10%" or a
// flat amount), total = gross - discount, profit = total - cost. The
// dev backend has no purchase ledger, so cost price stays zero.
func (s *Store) CreateOrder(_ context.Context, draft core.OrderDraft) (core.Order, error) {
	if err := draft.Validate(); err != nil {
		return core.Order{}, fmt.Errorf("%w: %v", backend.ErrValidation, err)
	}
	gross := core.Money{Paise: draft.Rate.Paise * int64(draft.Quantity)}
	discount, annotation, err := resolveDiscount(draft.Discount, gross)
	if err != nil {
		return core.Order{}, fmt.Errorf("%w: %v", backend.ErrValidation, err)
	}
	total := core.Money{Paise: gross.Paise - discount.Paise}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderSeq++
	o := core.Order{
		ID:             fmt.Sprintf("ORD-%d", s.orderSeq),
		CustomerName:   draft.CustomerName,
		CustomerPhone:  draft.CustomerPhone,
		Items:          []core.OrderItem{{Name: draft.Item, Quantity: 1, Price: total}},
		TotalAmount:    total,
		GrossAmount:    gross,
		Discount:       discount,
		DiscountString: annotation,
		CostPrice:      core.Money{},
		Profit:         total,
		Status:         core.StatusPending,
		OrderDate:      time.Now(),
	}
	s.orders = append(s.orders, o)
	return o, nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return backend.ErrNotFound
}

func (s *Store) UpdateOrderStatus(_ context.Context, id string, status core.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %v", backend.ErrValidation, core.ErrInvalidStatus)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return nil
		}
	}
	return backend.ErrNotFound
}

// resolveDiscount interprets the free-text discount field. A trailing
// "%" makes it a percentage of gross and keeps the text as annotation;
// anything else parses as a flat rupee amount; blank means none.
func resolveDiscount(raw string, gross core.Money) (core.Money, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return core.Money{}, "", nil
	}
	if strings.HasSuffix(raw, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "%")), 64)
		if err != nil || pct < 0 || pct > 100 {
			return core.Money{}, "", fmt.Errorf("bad discount %q", raw)
		}
		return core.Money{Paise: int64(float64(gross.Paise) * pct / 100)}, raw, nil
	}
	paise, err := core.ParseDecimalToPaise(raw)
	if err != nil {
		return core.Money{}, "", fmt.Errorf("bad discount %q", raw)
	}
	return core.Money{Paise: paise}, "", nil
}
