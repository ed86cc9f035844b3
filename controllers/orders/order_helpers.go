package orderController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prabhat63s/MRITTIKA/configs"
	"github.com/prabhat63s/MRITTIKA/models"
	"github.com/prabhat63s/MRITTIKA/responses"
)

// Helpers below write their own error response and report ok=false, so
// handlers just return nil when a helper has already answered.

func currentUserID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	userId, _ := c.Locals("userId").(string)
	if userId == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
		return primitive.NilObjectID, false
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID format",
		})
		return primitive.NilObjectID, false
	}
	return userObjectID, true
}

// fetchOrder loads the order named by the :orderId route param.
func fetchOrder(c *fiber.Ctx, ctx context.Context) (*models.Order, bool) {
	orderID, err := primitive.ObjectIDFromHex(c.Params("orderId"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID",
		})
		return nil, false
	}

	var order models.Order
	if err := orderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			_ = c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
			})
		} else {
			_ = c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to fetch order",
			})
		}
		return nil, false
	}
	return &order, true
}

func requireOwnerOrAdmin(c *fiber.Ctx, order *models.Order) bool {
	userId, _ := c.Locals("userId").(string)
	role, _ := c.Locals("role").(string)

	if role != models.RoleAdmin && order.UserID.Hex() != userId {
		_ = c.Status(fiber.StatusForbidden).JSON(responses.APIResponse{
			Status:  fiber.StatusForbidden,
			Message: "Forbidden",
		})
		return false
	}
	return true
}

// buildOrderItems freezes the requested lines against the catalog: current
// name and price are snapshotted and totals recomputed. Client-supplied
// prices never enter the order.
func buildOrderItems(c *fiber.Ctx, ctx context.Context, items []models.GuestItem) ([]models.OrderItem, bool) {
	orderItems := make([]models.OrderItem, 0, len(items))
	seen := make(map[primitive.ObjectID]bool, len(items))

	for _, item := range items {
		if item.Quantity < 1 {
			_ = c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Quantity must be at least 1",
			})
			return nil, false
		}

		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid product ID",
			})
			return nil, false
		}
		if seen[productID] {
			_ = c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Duplicate product in order items",
			})
			return nil, false
		}
		seen[productID] = true

		var product models.Product
		if err := productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				_ = c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
					Status:  fiber.StatusNotFound,
					Message: "Product not found",
				})
			} else {
				_ = c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
					Status:  fiber.StatusInternalServerError,
					Message: "Error fetching product",
				})
			}
			return nil, false
		}
		if !product.IsActive {
			_ = c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
				Status:  fiber.StatusBadRequest,
				Message: product.ProductName + " is no longer available",
			})
			return nil, false
		}

		orderItems = append(orderItems, models.SnapshotItem(product, item.Quantity))
	}

	return orderItems, true
}

// reserveStock decrements each product's stock only when enough remains.
// On the first shortfall everything already taken is restocked and the
// order is rejected.
func reserveStock(c *fiber.Ctx, ctx context.Context, items []models.OrderItem) bool {
	taken := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		result, err := productCollection.UpdateOne(ctx,
			bson.M{"_id": item.ProductID, "stockQuantity": bson.M{"$gte": item.Quantity}},
			bson.M{"$inc": bson.M{"stockQuantity": -item.Quantity}})
		if err != nil {
			restock(taken)
			_ = c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error reserving stock",
			})
			return false
		}
		if result.MatchedCount == 0 {
			restock(taken)
			_ = c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
				Status:  fiber.StatusConflict,
				Message: "Insufficient stock for " + item.ProductName,
			})
			return false
		}
		taken = append(taken, item)
	}

	return true
}

// restock returns reserved quantities, used for compensation and on
// cancellation. Runs on a fresh context so it still executes when the
// request deadline has passed.
func restock(items []models.OrderItem) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, item := range items {
		_, err := productCollection.UpdateOne(ctx,
			bson.M{"_id": item.ProductID},
			bson.M{"$inc": bson.M{"stockQuantity": item.Quantity}})
		if err != nil {
			logrus.WithError(err).WithField("productId", item.ProductID.Hex()).Error("restock failed")
		}
	}
}

// userEmail resolves the notification target for an order owner. Empty on
// lookup failure, which the mailer treats as skip.
func userEmail(ctx context.Context, userID primitive.ObjectID) string {
	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		logrus.WithError(err).WithField("userId", userID.Hex()).Warn("owner email lookup failed")
		return ""
	}
	return user.Email
}

// verifyCallbackSignature checks the HMAC a payment callback presents. The
// signed payload includes the :orderId route param and the requested
// status, so a signature captured for one order cannot drive a different
// order or a different transition.
func verifyCallbackSignature(c *fiber.Ctx, request UpdatePaymentRequest) bool {
	return models.VerifyPaymentCallback(
		configs.EnvPaymentSecret(),
		c.Params("orderId"),
		request.RazorpayOrderID,
		request.RazorpayPaymentID,
		request.Status,
		request.Signature,
	)
}
