package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscountedUnitPriceBounds(t *testing.T) {
	require.Equal(t, 100.0, DiscountedUnitPrice(100, 0))
	require.Equal(t, 90.0, DiscountedUnitPrice(100, 10))
	require.Equal(t, 0.0, DiscountedUnitPrice(100, 100))

	// A valid discount never drives the price negative or above list.
	for _, pct := range []float64{0, 5, 10, 25, 50, 99, 100} {
		got := DiscountedUnitPrice(250, pct)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 250.0)
	}
}

func TestSubtotalAdditivity(t *testing.T) {
	a := []Line{{UnitPrice: 120, Quantity: 2}}
	b := []Line{{UnitPrice: 80, Quantity: 3}, {UnitPrice: 45.5, Quantity: 1}}

	combined := append(append([]Line{}, a...), b...)
	require.Equal(t, Subtotal(a)+Subtotal(b), Subtotal(combined))

	// Removing a line restores the previous subtotal.
	require.Equal(t, Subtotal(combined)-Subtotal(b), Subtotal(a))
}

func TestGrandTotalSaveTenScenario(t *testing.T) {
	// 800 subtotal, 10% promo, flat delivery: 800 - 80 + 50 = 770.
	lines := []Line{
		{UnitPrice: 200, Quantity: 2},
		{UnitPrice: 400, Quantity: 1},
	}
	subtotal := Subtotal(lines)
	require.Equal(t, 800.0, subtotal)
	require.Equal(t, 80.0, PromoDiscount(subtotal, 0.10))
	require.Equal(t, 770.0, GrandTotal(subtotal, 0.10))
}

func TestGrandTotalWithoutPromo(t *testing.T) {
	require.Equal(t, 350.0, GrandTotal(300, 0))
}

func TestPurity(t *testing.T) {
	lines := []Line{{UnitPrice: 99.99, Quantity: 3}}
	first := Subtotal(lines)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Subtotal(lines))
		require.Equal(t, GrandTotal(first, 0.20), GrandTotal(first, 0.20))
	}
}

func TestRound2(t *testing.T) {
	require.Equal(t, 10.57, Round2(10.567))
	require.Equal(t, 3.14, Round2(3.14159))
	require.Equal(t, 770.0, Round2(770))
}
