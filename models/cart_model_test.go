package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartAddIncrementsExistingLine(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := Cart{}

	require.NoError(t, cart.Add(pid, 2))
	require.NoError(t, cart.Add(pid, 3))

	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	cart := Cart{}
	require.ErrorIs(t, cart.Add(primitive.NewObjectID(), 0), ErrInvalidQuantity)
	require.ErrorIs(t, cart.Add(primitive.NewObjectID(), -4), ErrInvalidQuantity)
	require.Empty(t, cart.Items)
}

func TestCartSetQuantity(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := Cart{}
	require.NoError(t, cart.Add(pid, 1))

	require.NoError(t, cart.SetQuantity(pid, 7))
	require.Equal(t, 7, cart.Items[0].Quantity)

	require.ErrorIs(t, cart.SetQuantity(pid, 0), ErrInvalidQuantity)
	require.ErrorIs(t, cart.SetQuantity(primitive.NewObjectID(), 2), ErrItemNotFound)
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := Cart{}
	require.NoError(t, cart.Add(pid, 2))

	cart.Remove(pid)
	require.Empty(t, cart.Items)

	// Second removal of the same product changes nothing.
	cart.Remove(pid)
	require.Empty(t, cart.Items)
}

func TestCartAddThenRemoveRestores(t *testing.T) {
	keep := primitive.NewObjectID()
	extra := primitive.NewObjectID()
	cart := Cart{}
	require.NoError(t, cart.Add(keep, 4))

	before := append([]CartItem{}, cart.Items...)
	require.NoError(t, cart.Add(extra, 1))
	cart.Remove(extra)

	require.Equal(t, before, cart.Items)
}

func TestCartMergeSumsOnCollision(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	cart := Cart{}
	require.NoError(t, cart.Add(b, 3))

	cart.Merge([]CartItem{
		{ProductID: a, Quantity: 2},
		{ProductID: b, Quantity: 1},
	})

	require.Len(t, cart.Items, 2)
	quantities := map[primitive.ObjectID]int{}
	for _, item := range cart.Items {
		quantities[item.ProductID] = item.Quantity
	}
	require.Equal(t, 2, quantities[a])
	require.Equal(t, 4, quantities[b])
}

func TestCartMergeOrderIndependentQuantities(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	guest := []CartItem{
		{ProductID: a, Quantity: 2},
		{ProductID: b, Quantity: 1},
	}
	reversed := []CartItem{guest[1], guest[0]}

	left := Cart{Items: []CartItem{{ProductID: b, Quantity: 3}}}
	right := Cart{Items: []CartItem{{ProductID: b, Quantity: 3}}}
	left.Merge(guest)
	right.Merge(reversed)

	asMap := func(items []CartItem) map[primitive.ObjectID]int {
		m := map[primitive.ObjectID]int{}
		for _, item := range items {
			m[item.ProductID] = item.Quantity
		}
		return m
	}
	require.Equal(t, asMap(left.Items), asMap(right.Items))
}

func TestCartMergeDropsInvalidLines(t *testing.T) {
	cart := Cart{}
	cart.Merge([]CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 0},
		{ProductID: primitive.NewObjectID(), Quantity: -1},
	})
	require.Empty(t, cart.Items)
}
