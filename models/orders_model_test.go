package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderStatusTransitions(t *testing.T) {
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
		{OrderProcessing, OrderPending, false},
		{OrderProcessing, OrderDelivered, false},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, true},
		{OrderShipped, OrderProcessing, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderPending, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderProcessing, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDeliveredAndCancelledAreTerminal(t *testing.T) {
	require.True(t, OrderDelivered.Terminal())
	require.True(t, OrderCancelled.Terminal())
	require.False(t, OrderPending.Terminal())
	require.False(t, OrderProcessing.Terminal())
	require.False(t, OrderShipped.Terminal())
}

func TestCancellableFromEveryNonTerminalState(t *testing.T) {
	for _, from := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped} {
		require.True(t, from.CanTransitionTo(OrderCancelled), "%s", from)
	}
	require.False(t, OrderDelivered.CanTransitionTo(OrderCancelled))
	require.False(t, OrderCancelled.CanTransitionTo(OrderCancelled))
}

func TestPaymentStatusTransitions(t *testing.T) {
	require.True(t, PaymentPending.CanTransitionTo(PaymentCompleted))
	require.True(t, PaymentPending.CanTransitionTo(PaymentFailed))
	require.False(t, PaymentCompleted.CanTransitionTo(PaymentPending))
	require.False(t, PaymentCompleted.CanTransitionTo(PaymentFailed))
	require.False(t, PaymentFailed.CanTransitionTo(PaymentCompleted))
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	require.Equal(t, OrderShipped, status)

	_, err = ParseOrderStatus("returned")
	require.Error(t, err)
}

func TestParsePaymentMode(t *testing.T) {
	mode, err := ParsePaymentMode("COD")
	require.NoError(t, err)
	require.Equal(t, PaymentCOD, mode)

	_, err = ParsePaymentMode("upi")
	require.Error(t, err)

	// Mode strings are case sensitive.
	_, err = ParsePaymentMode("cod")
	require.Error(t, err)
}

func TestSnapshotItemFreezesCatalogValues(t *testing.T) {
	vase := Product{
		ID:          primitive.NewObjectID(),
		ProductName: "Terracotta Vase",
		Price:       100,
	}
	bowl := Product{
		ID:          primitive.NewObjectID(),
		ProductName: "Clay Bowl",
		Price:       50,
	}

	items := []OrderItem{
		SnapshotItem(vase, 2),
		SnapshotItem(bowl, 1),
	}
	require.Equal(t, 250.0, OrderAmount(items))
	require.Equal(t, 200.0, items[0].Total)
	require.Equal(t, 50.0, items[1].Total)

	// Later catalog edits must not reach back into the frozen lines.
	vase.Price = 999
	vase.ProductName = "Renamed Vase"
	require.Equal(t, "Terracotta Vase", items[0].ProductName)
	require.Equal(t, 100.0, items[0].Price)
	require.Equal(t, 200.0, items[0].Total)
	require.Equal(t, 250.0, OrderAmount(items))
}

func TestOrderAmountEmpty(t *testing.T) {
	require.Equal(t, 0.0, OrderAmount(nil))
}
