package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/prabhat63s/MRITTIKA/models"
	"github.com/prabhat63s/MRITTIKA/pricing"
)

const appName = "MRITTIKA"

func wrap(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
    <table width="100%%" cellspacing="0" cellpadding="0" style="max-width: 600px; margin: auto; background: #ffffff; border-radius: 8px;">
      <tr>
        <td style="background: #4f46e5; padding: 20px; text-align: center; color: white; font-size: 20px; font-weight: bold;">%s</td>
      </tr>
      <tr>
        <td style="padding: 30px; color: #333;">%s</td>
      </tr>
      <tr>
        <td style="background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #777;">&copy; %d %s. All rights reserved.</td>
      </tr>
    </table>
  </body>
</html>`, title, body, time.Now().Year(), appName)
}

func itemRows(items []models.OrderItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b,
			`<tr><td style="padding: 6px 0;">%s</td><td style="text-align: center;">x%d</td><td style="text-align: right;">&#8377;%.2f</td></tr>`,
			item.ProductName, item.Quantity, pricing.Round2(item.Total))
	}
	return b.String()
}

func welcomeTemplate(email string) string {
	body := fmt.Sprintf(
		`<h2>Hello %s,</h2><p>We&rsquo;re excited to have you join our community! You can now log in and start exploring.</p>`,
		email)
	return wrap("Welcome to "+appName, body)
}

func adminNewUserTemplate(email string) string {
	body := fmt.Sprintf(`<p>A new user registered with email: <b>%s</b></p>`, email)
	return wrap(appName+" Admin", body)
}

func otpTemplate(otp string) string {
	body := fmt.Sprintf(
		`<h2>Your OTP Code</h2><p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p><p>It will expire in 10 minutes. If you didn&rsquo;t request this, ignore this email.</p>`,
		otp)
	return wrap(appName+" Security", body)
}

func orderPlacedTemplate(order models.Order) string {
	body := fmt.Sprintf(
		`<h2>Thank you for your order!</h2><p>Order <b>#%s</b> has been placed.</p><table width="100%%">%s</table><p style="margin-top: 16px;">Amount: <b>&#8377;%.2f</b> &middot; Payment: %s</p>`,
		order.ID.Hex(), itemRows(order.Items), pricing.Round2(order.Amount), order.PaymentMode)
	return wrap("Order Placed", body)
}

func adminOrderTemplate(order models.Order) string {
	body := fmt.Sprintf(
		`<p>New order <b>#%s</b> for &#8377;%.2f (%d items, %s).</p>`,
		order.ID.Hex(), pricing.Round2(order.Amount), len(order.Items), order.PaymentMode)
	return wrap("New Order Received", body)
}

func orderStatusTemplate(order models.Order) string {
	body := fmt.Sprintf(
		`<p>Your order <b>#%s</b> is now <b>%s</b>.</p>`,
		order.ID.Hex(), order.OrderStatus)
	return wrap("Order Update", body)
}

func paymentStatusTemplate(order models.Order) string {
	body := fmt.Sprintf(
		`<p>Payment for order <b>#%s</b> is now <b>%s</b>.</p>`,
		order.ID.Hex(), order.PaymentStatus)
	return wrap("Payment Update", body)
}
