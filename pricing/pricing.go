// Package pricing is the pure totals engine. Every function is stateless:
// identical inputs always produce identical outputs, and rounding happens
// only at presentation time so per-line error never compounds.
package pricing

import "math"

// DeliveryCharge is the flat shipping fee added to every checkout.
const DeliveryCharge = 50.0

// LineTotal is unit price times quantity, unrounded.
func LineTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// DiscountedUnitPrice applies a percentage discount (0-100) to a unit price.
func DiscountedUnitPrice(price, discountPercentage float64) float64 {
	return price * (1 - discountPercentage/100)
}

// Line pairs a unit price with a quantity for subtotal computation.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Subtotal sums line totals.
func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += LineTotal(l.UnitPrice, l.Quantity)
	}
	return sum
}

// PromoDiscount is the absolute amount a promo fraction takes off the
// subtotal.
func PromoDiscount(subtotal, discountFraction float64) float64 {
	return subtotal * discountFraction
}

// GrandTotal is subtotal minus promo discount plus the delivery charge.
func GrandTotal(subtotal, discountFraction float64) float64 {
	return subtotal - PromoDiscount(subtotal, discountFraction) + DeliveryCharge
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
