package orderController

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prabhat63s/MRITTIKA/configs"
	"github.com/prabhat63s/MRITTIKA/models"
	"github.com/prabhat63s/MRITTIKA/notifications"
	"github.com/prabhat63s/MRITTIKA/pricing"
	"github.com/prabhat63s/MRITTIKA/responses"
)

var orderCollection *mongo.Collection = configs.GetCollection(configs.DB, "orders")

var userCollection *mongo.Collection = configs.GetCollection(configs.DB, "users")

var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

var cartCollection *mongo.Collection = configs.GetCollection(configs.DB, "carts")

var promoCollection *mongo.Collection = configs.GetCollection(configs.DB, "promotions")

var validate = validator.New()

type PlaceOrderRequest struct {
	Items          []models.GuestItem     `json:"items" validate:"required,min=1,dive"`
	PaymentMode    string                 `json:"paymentMode" validate:"required"`
	Address        models.ShippingAddress `json:"address"`
	PromoCode      string                 `json:"promoCode"`
	IdempotencyKey string                 `json:"idempotencyKey"`
}

// PlaceOrder converts the cart snapshot into an immutable order. Every
// line total and the amount are recomputed from the catalog price, the
// client-supplied figures are never persisted. Stock is reserved with
// per-product conditional decrements; a failed reservation restocks what
// was already taken and rejects the order.
func PlaceOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	var request PlaceOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if len(request.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Order must have items",
		})
	}

	paymentMode, err := models.ParsePaymentMode(request.PaymentMode)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid payment mode",
		})
	}

	if err := validate.Struct(request.Address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Incomplete shipping address",
		})
	}

	// Double-submit guard: a replayed key returns the order it created.
	if request.IdempotencyKey != "" {
		var existing models.Order
		err := orderCollection.FindOne(ctx, bson.M{
			"userId":         userObjectID,
			"idempotencyKey": request.IdempotencyKey,
		}).Decode(&existing)
		if err == nil {
			return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
				Status:  fiber.StatusOK,
				Message: "Order already placed",
				Result:  &fiber.Map{"order": existing},
			})
		}
		if err != mongo.ErrNoDocuments {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error checking order",
			})
		}
	}

	orderItems, ok := buildOrderItems(c, ctx, request.Items)
	if !ok {
		return nil
	}

	amount := models.OrderAmount(orderItems)

	discountApplied := 0.0
	request.PromoCode = strings.ToUpper(strings.TrimSpace(request.PromoCode))
	if request.PromoCode != "" {
		var promo models.Promotion
		err := promoCollection.FindOne(ctx, bson.M{"code": request.PromoCode}).Decode(&promo)
		if err != nil || !promo.Usable(time.Now()) {
			return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid promo code",
			})
		}
		discountApplied = pricing.PromoDiscount(amount, promo.Discount)
	}

	if !reserveStock(c, ctx, orderItems) {
		return nil
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userObjectID,
		Items:           orderItems,
		Amount:          amount,
		DeliveryCharge:  pricing.DeliveryCharge,
		DiscountApplied: discountApplied,
		PromoCode:       request.PromoCode,
		PaymentMode:     paymentMode,
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     models.OrderPending,
		Address:         request.Address,
		IdempotencyKey:  request.IdempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := orderCollection.InsertOne(ctx, order); err != nil {
		restock(order.Items)
		if mongo.IsDuplicateKeyError(err) {
			// Lost the idempotency race; hand back the winner.
			var existing models.Order
			if ferr := orderCollection.FindOne(ctx, bson.M{
				"userId":         userObjectID,
				"idempotencyKey": request.IdempotencyKey,
			}).Decode(&existing); ferr == nil {
				return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
					Status:  fiber.StatusOK,
					Message: "Order already placed",
					Result:  &fiber.Map{"order": existing},
				})
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	// Checkout consumed the cart; clearing it is best-effort.
	if _, err := cartCollection.UpdateOne(ctx,
		bson.M{"userId": userObjectID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": now}},
	); err != nil {
		logrus.WithError(err).Warn("cart clear after checkout failed")
	}

	// Order is durable at this point; notifications never roll it back.
	notifications.SendOrderPlaced(ctx, userEmail(ctx, userObjectID), order)

	return c.Status(fiber.StatusCreated).JSON(responses.APIResponse{
		Status:  fiber.StatusCreated,
		Message: "Order placed successfully",
		Result:  &fiber.Map{"order": order},
	})
}

// GetUserOrders lists the caller's orders, newest first.
func GetUserOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	orders := make([]models.Order, 0)
	cursor, err := orderCollection.Find(ctx,
		bson.M{"userId": userObjectID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}
	if err = cursor.All(ctx, &orders); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode orders",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

// GetOrderByID returns a single order to its owner or an admin.
func GetOrderByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, ok := fetchOrder(c, ctx)
	if !ok {
		return nil
	}
	if !requireOwnerOrAdmin(c, order) {
		return nil
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Order fetched successfully",
		Result:  &fiber.Map{"order": *order},
	})
}

// GetAllOrders is the admin back-office list, newest first.
func GetAllOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders := make([]models.Order, 0)
	cursor, err := orderCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}
	if err = cursor.All(ctx, &orders); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode orders",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders, "totalOrders": len(orders)},
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus advances the order status machine (admin only, route
// enforced).
func UpdateOrderStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request UpdateStatusRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	newStatus, err := models.ParseOrderStatus(request.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	order, ok := fetchOrder(c, ctx)
	if !ok {
		return nil
	}

	if !order.OrderStatus.CanTransitionTo(newStatus) {
		return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
			Status:  fiber.StatusConflict,
			Message: "Cannot move order from " + string(order.OrderStatus) + " to " + string(newStatus),
		})
	}

	// Compare-and-set on the current status so a concurrent transition
	// cannot be overwritten.
	result, err := orderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID, "orderStatus": order.OrderStatus},
		bson.M{"$set": bson.M{"orderStatus": newStatus, "updatedAt": time.Now()}})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update order",
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
			Status:  fiber.StatusConflict,
			Message: "Order status changed concurrently, retry",
		})
	}

	order.OrderStatus = newStatus
	if newStatus == models.OrderCancelled {
		restock(order.Items)
	}
	notifications.SendOrderStatusChanged(ctx, userEmail(ctx, order.UserID), *order)

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Order status updated",
		Result:  &fiber.Map{"order": *order},
	})
}

type UpdatePaymentRequest struct {
	Status            string `json:"status" validate:"required"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	Signature         string `json:"signature"`
}

// UpdatePaymentStatus moves the payment machine and stores external refs.
// Admins pass the role check; payment callbacks authorize with an HMAC
// signature over "razorpayOrderId|razorpayPaymentId".
func UpdatePaymentStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request UpdatePaymentRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin {
		if !verifyCallbackSignature(c, request) {
			return c.Status(fiber.StatusForbidden).JSON(responses.APIResponse{
				Status:  fiber.StatusForbidden,
				Message: "Invalid payment signature",
			})
		}
	}

	newStatus, err := models.ParsePaymentStatus(request.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	order, ok := fetchOrder(c, ctx)
	if !ok {
		return nil
	}

	if !order.PaymentStatus.CanTransitionTo(newStatus) {
		return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
			Status:  fiber.StatusConflict,
			Message: "Cannot move payment from " + string(order.PaymentStatus) + " to " + string(newStatus),
		})
	}

	update := bson.M{"paymentStatus": newStatus, "updatedAt": time.Now()}
	if request.RazorpayOrderID != "" {
		update["razorpayOrderId"] = request.RazorpayOrderID
	}
	if request.RazorpayPaymentID != "" {
		update["razorpayPaymentId"] = request.RazorpayPaymentID
	}

	result, err := orderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID, "paymentStatus": order.PaymentStatus},
		bson.M{"$set": update})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update payment",
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
			Status:  fiber.StatusConflict,
			Message: "Payment status changed concurrently, retry",
		})
	}

	order.PaymentStatus = newStatus
	notifications.SendPaymentStatusChanged(ctx, userEmail(ctx, order.UserID), *order)

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Payment status updated",
		Result:  &fiber.Map{"order": *order},
	})
}

// CancelOrder lets the owner or an admin cancel any non-delivered,
// non-cancelled order. Stock taken at placement is returned.
func CancelOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, ok := fetchOrder(c, ctx)
	if !ok {
		return nil
	}
	if !requireOwnerOrAdmin(c, order) {
		return nil
	}

	if !order.OrderStatus.CanTransitionTo(models.OrderCancelled) {
		return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
			Status:  fiber.StatusConflict,
			Message: string(order.OrderStatus) + " orders cannot be cancelled",
		})
	}

	result, err := orderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID, "orderStatus": order.OrderStatus},
		bson.M{"$set": bson.M{"orderStatus": models.OrderCancelled, "updatedAt": time.Now()}})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to cancel order",
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
			Status:  fiber.StatusConflict,
			Message: "Order status changed concurrently, retry",
		})
	}

	restock(order.Items)

	order.OrderStatus = models.OrderCancelled
	notifications.SendOrderStatusChanged(ctx, userEmail(ctx, order.UserID), *order)

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Order cancelled",
		Result:  &fiber.Map{"order": *order},
	})
}
