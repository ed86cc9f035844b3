package cartController

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prabhat63s/MRITTIKA/models"
	"github.com/prabhat63s/MRITTIKA/pricing"
	"github.com/prabhat63s/MRITTIKA/responses"
)

// currentUserID reads the authenticated subject out of Locals. On failure
// it writes the error response itself and reports ok=false.
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

// resolveCart loads the cart and joins each line against the catalog.
// Lines whose product has been deleted are skipped in the resolved view.
func resolveCart(ctx context.Context, userID primitive.ObjectID) ([]fiber.Map, []pricing.Line, error) {
	var cart models.Cart
	err := cartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return []fiber.Map{}, nil, nil
		}
		return nil, nil, err
	}

	if len(cart.Items) == 0 {
		return []fiber.Map{}, nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	cursor, err := productCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, nil, err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	resolved := make([]fiber.Map, 0, len(cart.Items))
	lines := make([]pricing.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		resolved = append(resolved, fiber.Map{
			"productId":          product.ID.Hex(),
			"productName":        product.ProductName,
			"price":              product.Price,
			"discountPercentage": product.DiscountPercentage,
			"images":             product.Images,
			"stockQuantity":      product.StockQuantity,
			"quantity":           item.Quantity,
			"lineTotal":          pricing.Round2(pricing.LineTotal(product.Price, item.Quantity)),
		})
		lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: item.Quantity})
	}

	return resolved, lines, nil
}

// respondWithCart returns the full resolved item list so the caller's view
// is reconciled to server truth after every mutation.
func respondWithCart(c *fiber.Ctx, ctx context.Context, userID primitive.ObjectID, message string) error {
	items, lines, err := resolveCart(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result: &fiber.Map{
			"cartItems": items,
			"cartCount": len(items),
			"subtotal":  pricing.Round2(pricing.Subtotal(lines)),
		},
	})
}
