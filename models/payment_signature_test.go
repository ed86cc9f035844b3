package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyPaymentCallback(t *testing.T) {
	secret := "callback-secret"
	sig := PaymentCallbackSignature(secret, "order-1", "rzp-order-1", "rzp-pay-1", "paid")

	require.True(t, VerifyPaymentCallback(secret, "order-1", "rzp-order-1", "rzp-pay-1", "paid", sig))
}

func TestVerifyPaymentCallbackBoundToOrder(t *testing.T) {
	secret := "callback-secret"
	sig := PaymentCallbackSignature(secret, "order-1", "rzp-order-1", "rzp-pay-1", "paid")

	// A signature issued for one order must not authorize a callback
	// against a different order, even with the same gateway ids.
	require.False(t, VerifyPaymentCallback(secret, "order-2", "rzp-order-1", "rzp-pay-1", "paid", sig))
}

func TestVerifyPaymentCallbackBoundToStatus(t *testing.T) {
	secret := "callback-secret"
	sig := PaymentCallbackSignature(secret, "order-1", "rzp-order-1", "rzp-pay-1", "paid")

	require.False(t, VerifyPaymentCallback(secret, "order-1", "rzp-order-1", "rzp-pay-1", "failed", sig))
}

func TestVerifyPaymentCallbackRejectsWrongSecret(t *testing.T) {
	sig := PaymentCallbackSignature("callback-secret", "order-1", "rzp-order-1", "rzp-pay-1", "paid")

	require.False(t, VerifyPaymentCallback("other-secret", "order-1", "rzp-order-1", "rzp-pay-1", "paid", sig))
}

func TestVerifyPaymentCallbackRejectsMissingValues(t *testing.T) {
	sig := PaymentCallbackSignature("callback-secret", "order-1", "rzp-order-1", "rzp-pay-1", "paid")

	require.False(t, VerifyPaymentCallback("", "order-1", "rzp-order-1", "rzp-pay-1", "paid", sig))
	require.False(t, VerifyPaymentCallback("callback-secret", "order-1", "rzp-order-1", "rzp-pay-1", "paid", ""))
}
