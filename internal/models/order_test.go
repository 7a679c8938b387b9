package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderDraft, true},
		{OrderPending, true},
		{OrderApproved, true},
		{OrderFulfilled, true},
		{OrderRejected, true},
		{OrderStatus("cancelled"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderDraft, OrderPending, true},
		{OrderDraft, OrderApproved, false},
		{OrderDraft, OrderRejected, false},
		{OrderPending, OrderApproved, true},
		{OrderPending, OrderRejected, true},
		{OrderPending, OrderFulfilled, false},
		{OrderApproved, OrderFulfilled, true},
		{OrderApproved, OrderRejected, true},
		{OrderApproved, OrderPending, false},
		{OrderFulfilled, OrderRejected, false},
		{OrderFulfilled, OrderPending, false},
		{OrderRejected, OrderPending, false},
		{OrderRejected, OrderApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_HoldsStock(t *testing.T) {
	assert.False(t, OrderDraft.HoldsStock())
	assert.True(t, OrderPending.HoldsStock())
	assert.True(t, OrderApproved.HoldsStock())
	assert.True(t, OrderFulfilled.HoldsStock())
	assert.False(t, OrderRejected.HoldsStock())
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{
		UnitPrice:          decimal.NewFromInt(100),
		Quantity:           10,
		BonusQuantity:      2,
		DiscountPercentage: decimal.NewFromInt(10),
	}

	// 100 * 10 * 0.9 = 900; bonus units contribute nothing.
	assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(900)),
		"got %s", item.LineTotal())
}

func TestOrderItem_LineTotal_NoDiscount(t *testing.T) {
	item := OrderItem{
		UnitPrice: decimal.NewFromFloat(12.5),
		Quantity:  4,
	}
	assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(50)))
}

func TestOrderItem_UnitsNeeded(t *testing.T) {
	item := OrderItem{Quantity: 4, BonusQuantity: 1}
	assert.Equal(t, 5, item.UnitsNeeded())
}

func TestOrder_Total(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{UnitPrice: decimal.NewFromInt(100), Quantity: 10, DiscountPercentage: decimal.NewFromInt(10)},
			{UnitPrice: decimal.NewFromInt(50), Quantity: 2},
		},
	}
	assert.True(t, order.Total().Equal(decimal.NewFromInt(1000)),
		"got %s", order.Total())
}
