package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderProcessing, OrderDelivered, false},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderShipped, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderProcessing.IsTerminal())
	assert.False(t, OrderShipped.IsTerminal())
	assert.True(t, OrderDelivered.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
}

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentPending, PaymentPaid, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentFailed, PaymentPaid, true},
		{PaymentFailed, PaymentFailed, false},
		{PaymentPaid, PaymentFailed, false},
		{PaymentPaid, PaymentPending, false},
		{PaymentFailed, PaymentPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 1250}
	assert.Equal(t, int64(3750), item.Subtotal())
}

func TestOrder_SellerIDs_Deduplicates(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()
	order := &Order{
		Items: []OrderItem{
			{SellerID: sellerA},
			{SellerID: sellerB},
			{SellerID: sellerA},
		},
	}

	ids := order.SellerIDs()
	assert.Equal(t, []uuid.UUID{sellerA, sellerB}, ids)
}

func TestOrder_SoleSeller(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()

	single := &Order{Items: []OrderItem{{SellerID: sellerA}, {SellerID: sellerA}}}
	id, ok := single.SoleSeller()
	assert.True(t, ok)
	assert.Equal(t, sellerA, id)

	multi := &Order{Items: []OrderItem{{SellerID: sellerA}, {SellerID: sellerB}}}
	id, ok = multi.SoleSeller()
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestOrder_ContainsSeller(t *testing.T) {
	seller := uuid.New()
	order := &Order{Items: []OrderItem{{SellerID: seller}}}

	assert.True(t, order.ContainsSeller(seller))
	assert.False(t, order.ContainsSeller(uuid.New()))
}

func TestOrder_OwnedEntirelyBy(t *testing.T) {
	seller := uuid.New()
	other := uuid.New()

	owned := &Order{Items: []OrderItem{{SellerID: seller}, {SellerID: seller}}}
	assert.True(t, owned.OwnedEntirelyBy(seller))

	mixed := &Order{Items: []OrderItem{{SellerID: seller}, {SellerID: other}}}
	assert.False(t, mixed.OwnedEntirelyBy(seller))

	empty := &Order{}
	assert.False(t, empty.OwnedEntirelyBy(seller))
}

func TestOrder_SubtotalFor(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()
	order := &Order{
		Items: []OrderItem{
			{SellerID: sellerA, Quantity: 2, UnitPrice: 1000},
			{SellerID: sellerB, Quantity: 1, UnitPrice: 500},
			{SellerID: sellerA, Quantity: 1, UnitPrice: 250},
		},
	}

	assert.Equal(t, int64(2250), order.SubtotalFor(sellerA))
	assert.Equal(t, int64(500), order.SubtotalFor(sellerB))
	assert.Equal(t, int64(0), order.SubtotalFor(uuid.New()))
}
