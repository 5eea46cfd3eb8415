// Package backend defines the ports to the external system of record.
// The dashboard never persists anything itself; every record comes from
// one of these sources and every mutation goes back through them.
package backend

import (
	"context"

	"vyapari/internal/core"
)

type (
	ExpenseSource interface {
		// ListExpenses returns every expense record in insertion order.
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		CreateExpense(ctx context.Context, draft core.ExpenseDraft) (core.Expense, error)
		UpdateExpense(ctx context.Context, id string, draft core.ExpenseDraft) (core.Expense, error)
		DeleteExpense(ctx context.Context, id string) error
	}

	OrderSource interface {
		// ListOrders returns every order record in insertion order.
		ListOrders(ctx context.Context) ([]core.Order, error)
		CreateOrder(ctx context.Context, draft core.OrderDraft) (core.Order, error)
		DeleteOrder(ctx context.Context, id string) error
		UpdateOrderStatus(ctx context.Context, id string, status core.OrderStatus) error
	}
)
