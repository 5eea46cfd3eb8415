package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vyapari/internal/backend"
	"vyapari/internal/core"
)

func TestExpenseLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateExpense(ctx, core.ExpenseDraft{
		Item:     "Fabric",
		Category: "Raw Material",
		Amount:   core.Money{Paise: 50000},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "EXP-1001", created.ExpenseID)

	updated, err := s.UpdateExpense(ctx, created.ID, core.ExpenseDraft{
		Item:     "Silk fabric",
		Category: "Raw Material",
		Amount:   core.Money{Paise: 90000},
	})
	require.NoError(t, err)
	assert.Equal(t, "Silk fabric", updated.Item)
	assert.Equal(t, created.ExpenseID, updated.ExpenseID)

	require.NoError(t, s.DeleteExpense(ctx, created.ID))
	list, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExpenseValidationAndNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateExpense(ctx, core.ExpenseDraft{Item: ""})
	assert.ErrorIs(t, err, backend.ErrValidation)

	_, err = s.UpdateExpense(ctx, "missing", core.ExpenseDraft{Item: "x", Amount: core.Money{Paise: 100}})
	assert.ErrorIs(t, err, backend.ErrNotFound)

	assert.ErrorIs(t, s.DeleteExpense(ctx, "missing"), backend.ErrNotFound)
}

func TestCreateOrderDerivesBreakdown(t *testing.T) {
	s := New()
	ctx := context.Background()

	tests := []struct {
		name           string
		discount       string
		wantDiscount   int64
		wantAnnotation string
	}{
		{"no discount", "", 0, ""},
		{"flat discount", "100", 10000, ""},
		{"percentage discount", "10%", 15000, "10%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := s.CreateOrder(ctx, core.OrderDraft{
				Item:          "Kurta",
				Quantity:      2,
				Rate:          core.Money{Paise: 75000},
				Discount:      tt.discount,
				CustomerName:  "Asha",
				CustomerPhone: "98765 43210",
			})
			require.NoError(t, err)

			assert.Equal(t, int64(150000), o.GrossAmount.Paise)
			assert.Equal(t, tt.wantDiscount, o.Discount.Paise)
			assert.Equal(t, tt.wantAnnotation, o.DiscountString)
			assert.Equal(t, o.GrossAmount.Paise-tt.wantDiscount, o.TotalAmount.Paise)
			assert.Equal(t, core.StatusPending, o.Status)
			require.Len(t, o.Items, 1)
		})
	}
}

func TestCreateOrderRejectsBadDiscount(t *testing.T) {
	s := New()

	_, err := s.CreateOrder(context.Background(), core.OrderDraft{
		Item:     "Kurta",
		Quantity: 1,
		Rate:     core.Money{Paise: 100},
		Discount: "200%",
	})
	assert.ErrorIs(t, err, backend.ErrValidation)
}

func TestOrderStatusAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	o, err := s.CreateOrder(ctx, core.OrderDraft{
		Item: "Kurta", Quantity: 1, Rate: core.Money{Paise: 100},
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateOrderStatus(ctx, o.ID, core.StatusCompleted))
	list, err := s.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, list[0].Status)

	assert.ErrorIs(t, s.UpdateOrderStatus(ctx, "missing", core.StatusCompleted), backend.ErrNotFound)
	assert.ErrorIs(t, s.UpdateOrderStatus(ctx, o.ID, core.OrderStatus("shipped")), backend.ErrValidation)

	require.NoError(t, s.DeleteOrder(ctx, o.ID))
	assert.ErrorIs(t, s.DeleteOrder(ctx, o.ID), backend.ErrNotFound)
}
