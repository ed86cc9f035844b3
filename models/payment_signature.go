package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// PaymentCallbackSignature is the hex HMAC-SHA256 a payment callback must
// present. The signed payload covers the target order id and the requested
// status, so a signature authorizes exactly one transition on one order.
func PaymentCallbackSignature(secret, orderID, razorpayOrderID, razorpayPaymentID, status string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + razorpayOrderID + "|" + razorpayPaymentID + "|" + status))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPaymentCallback checks a presented signature in constant time.
// A missing secret or signature never verifies.
func VerifyPaymentCallback(secret, orderID, razorpayOrderID, razorpayPaymentID, status, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := PaymentCallbackSignature(secret, orderID, razorpayOrderID, razorpayPaymentID, status)
	return hmac.Equal([]byte(expected), []byte(signature))
}
