package notifications

import (
	"context"
	"fmt"

	"github.com/prabhat63s/MRITTIKA/configs"
	"github.com/prabhat63s/MRITTIKA/models"
)

// SendWelcome greets a new user and notifies the operator channel.
func SendWelcome(email string) {
	send(email, "Welcome to "+appName, welcomeTemplate(email))
	send(configs.EnvAdminEmail(), "New User Registered", adminNewUserTemplate(email))
}

// SendOTP mails a password reset code.
func SendOTP(email, otp string) {
	send(email, "Password Reset OTP", otpTemplate(otp))
}

// SendOrderPlaced confirms a new order to its owner and alerts the
// operator channel.
func SendOrderPlaced(ctx context.Context, ownerEmail string, order models.Order) {
	send(ownerEmail, "Order Placed Successfully", orderPlacedTemplate(order))
	send(configs.EnvAdminEmail(), "New Order Received", adminOrderTemplate(order))
	publishOrderEvent(ctx, "order.placed", order)
}

// SendOrderStatusChanged tells the owner about a status transition.
func SendOrderStatusChanged(ctx context.Context, ownerEmail string, order models.Order) {
	subject := fmt.Sprintf("Order #%s Status Update", order.ID.Hex())
	send(ownerEmail, subject, orderStatusTemplate(order))
	publishOrderEvent(ctx, "order.status_changed", order)
}

// SendPaymentStatusChanged tells the owner about a payment transition.
func SendPaymentStatusChanged(ctx context.Context, ownerEmail string, order models.Order) {
	subject := fmt.Sprintf("Order #%s Payment Update", order.ID.Hex())
	send(ownerEmail, subject, paymentStatusTemplate(order))
	publishOrderEvent(ctx, "order.payment_changed", order)
}
