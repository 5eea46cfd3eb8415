package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

type (
	OrderStatus string

	Money struct {
		Paise int64
	}

	// Expense is one expense record as held by the expense view.
	// ID is the backend-issued identifier; ExpenseID is the human-facing
	// display number and may be empty.
	Expense struct {
		ID        string
		ExpenseID string
		Item      string
		Category  string
		Amount    Money
		Date      time.Time
	}

	OrderItem struct {
		Name     string
		Quantity int
		Price    Money
	}

	// Order is one order record as held by the order view, with the
	// backend's nested customer fields flattened. The financial fields
	// (gross, discount, total, cost, profit) are produced upstream and
	// are displayed and aggregated only, never recomputed here.
	Order struct {
		ID             string
		CustomerName   string
		CustomerPhone  string
		Items          []OrderItem
		TotalAmount    Money
		GrossAmount    Money
		Discount       Money
		DiscountString string
		CostPrice      Money
		Profit         Money
		Status         OrderStatus
		OrderDate      time.Time
	}

	// ExpenseDraft carries the fields captured by the new/edit expense
	// form before they are sent to the backend.
	ExpenseDraft struct {
		Item     string
		Category string
		Amount   Money
	}

	// OrderDraft carries the fields captured by the new order form. The
	// discount is kept as the raw string the user typed ("100" or "10%");
	// the backend derives the financial breakdown from it.
	OrderDraft struct {
		Item          string
		Quantity      int
		Rate          Money
		Discount      string
		CustomerName  string
		CustomerPhone string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyItem       = errors.New("item/reason is required")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// ParseOrderStatus normalizes a backend status value to the fixed enum.
// Matching is case-insensitive; an unknown value comes back lower-cased
// with ok=false so callers can still display it.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (d ExpenseDraft) Validate() error {
	if strings.TrimSpace(d.Item) == "" {
		return ErrEmptyItem
	}
	if len(d.Item) > 200 {
		return errors.New("item/reason too long (max 200 characters)")
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

func (d OrderDraft) Validate() error {
	if strings.TrimSpace(d.Item) == "" {
		return ErrEmptyItem
	}
	if d.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if err := d.Rate.Validate(); err != nil {
		return err
	}
	return nil
}
