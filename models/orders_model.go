package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prabhat63s/MRITTIKA/pricing"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMode string

const (
	PaymentCOD  PaymentMode = "COD"
	PaymentCard PaymentMode = "card"
)

// orderTransitions is the full order status machine: forward-only delivery
// path, cancellation from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentCompleted: {},
	PaymentFailed:    {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

func ParsePaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(s) {
	case PaymentCOD, PaymentCard:
		return PaymentMode(s), nil
	}
	return "", fmt.Errorf("unknown payment mode %q", s)
}

// OrderItem is a frozen line: name and price are captured at order time
// and never change when the product is later edited.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
	Total       float64            `bson:"total" json:"total"`
}

// SnapshotItem freezes one catalog line onto an order. Name and price are
// copied and the total recomputed from the catalog price, never taken from
// the client.
func SnapshotItem(product Product, quantity int) OrderItem {
	return OrderItem{
		ProductID:   product.ID,
		ProductName: product.ProductName,
		Quantity:    quantity,
		Price:       product.Price,
		Total:       pricing.LineTotal(product.Price, quantity),
	}
}

// OrderAmount is the persisted order amount: the sum of frozen line
// totals.
func OrderAmount(items []OrderItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Total
	}
	return sum
}

// ShippingAddress is snapshotted onto the order at placement.
type ShippingAddress struct {
	UserName string `bson:"userName" json:"userName" validate:"required"`
	Mobile   string `bson:"mobile" json:"mobile" validate:"required"`
	Pincode  string `bson:"pincode" json:"pincode" validate:"required"`
	Street   string `bson:"street" json:"street" validate:"required"`
	City     string `bson:"city" json:"city" validate:"required"`
	State    string `bson:"state" json:"state" validate:"required"`
	Locality string `bson:"locality,omitempty" json:"locality,omitempty"`
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Amount            float64            `bson:"amount" json:"amount"`
	DeliveryCharge    float64            `bson:"deliveryCharge" json:"deliveryCharge"`
	DiscountApplied   float64            `bson:"discountApplied" json:"discountApplied"`
	PromoCode         string             `bson:"promoCode,omitempty" json:"promoCode,omitempty"`
	PaymentMode       PaymentMode        `bson:"paymentMode" json:"paymentMode"`
	PaymentStatus     PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus       OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	Address           ShippingAddress    `bson:"address" json:"address"`
	RazorpayOrderID   string             `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	IdempotencyKey    string             `bson:"idempotencyKey,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
