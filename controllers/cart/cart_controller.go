package cartController

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prabhat63s/MRITTIKA/configs"
	"github.com/prabhat63s/MRITTIKA/models"
	"github.com/prabhat63s/MRITTIKA/pricing"
	"github.com/prabhat63s/MRITTIKA/responses"
)

var cartCollection *mongo.Collection = configs.GetCollection(configs.DB, "carts")

var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

var promoCollection *mongo.Collection = configs.GetCollection(configs.DB, "promotions")

var validate = validator.New()

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// AddToCart puts a product in the user's cart, summing quantities when the
// line exists. The update is a guarded two-step so two concurrent adds of
// the same product never create two lines: $inc matches an existing line,
// otherwise $push runs only while the line is still absent.
func AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	var request AddToCartRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Quantity must be at least 1",
		})
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	var product models.Product
	if err := productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching product",
		})
	}

	if err := addItem(ctx, userObjectID, productID, request.Quantity); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return respondWithCart(c, ctx, userObjectID, "Successfully added to cart")
}

// addItem performs the increment-or-append update against the single cart
// document. Retries once when a concurrent append wins the race.
func addItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	now := time.Now()

	for attempt := 0; attempt < 2; attempt++ {
		result, err := cartCollection.UpdateOne(ctx,
			bson.M{"userId": userID, "items.productId": productID},
			bson.M{
				"$inc": bson.M{"items.$.quantity": quantity},
				"$set": bson.M{"updatedAt": now},
			})
		if err != nil {
			return err
		}
		if result.MatchedCount > 0 {
			return nil
		}

		// No existing line: append, guarded against a concurrent append of
		// the same product.
		result, err = cartCollection.UpdateOne(ctx,
			bson.M{"userId": userID, "items.productId": bson.M{"$ne": productID}},
			bson.M{
				"$push":        bson.M{"items": models.CartItem{ProductID: productID, Quantity: quantity}},
				"$set":         bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Concurrent upsert created the cart, fold into the $inc
				// path.
				continue
			}
			return err
		}
		if result.MatchedCount > 0 || result.UpsertedCount > 0 {
			return nil
		}
		// The line appeared between the two updates; retry the $inc.
	}

	// Two lost races in a row does not happen for a single product id, the
	// second $inc always matches the appended line.
	return nil
}

// GetCart returns the resolved cart: product display fields and prices are
// read live from the catalog so stock and price edits show up before
// checkout.
func GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	return respondWithCart(c, ctx, userObjectID, "Successfully fetched cart items")
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

func UpdateCartQuantity(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	var request UpdateQuantityRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if request.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Quantity must be at least 1",
		})
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	result, err := cartCollection.UpdateOne(ctx,
		bson.M{"userId": userObjectID, "items.productId": productID},
		bson.M{"$set": bson.M{"items.$.quantity": request.Quantity, "updatedAt": time.Now()}})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not in cart",
		})
	}

	return respondWithCart(c, ctx, userObjectID, "Cart updated")
}

// RemoveFromCart is idempotent: removing an absent product succeeds.
func RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	_, err = cartCollection.UpdateOne(ctx,
		bson.M{"userId": userObjectID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return respondWithCart(c, ctx, userObjectID, "Successfully removed from cart")
}

type MergeCartRequest struct {
	Items []models.GuestItem `json:"items"`
}

// MergeGuestCart folds a guest cart into the server cart: quantities sum
// on collision, new products append. The merged item list is written with
// a single $set so no partial merge is ever visible.
func MergeGuestCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	var request MergeCartRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	if len(request.Items) == 0 {
		return respondWithCart(c, ctx, userObjectID, "No guest items to merge")
	}

	guestItems := make([]models.CartItem, 0, len(request.Items))
	for _, item := range request.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid product ID in guest items",
			})
		}
		guestItems = append(guestItems, models.CartItem{ProductID: productID, Quantity: item.Quantity})
	}

	var cart models.Cart
	err := cartCollection.FindOne(ctx, bson.M{"userId": userObjectID}).Decode(&cart)
	if err != nil && err != mongo.ErrNoDocuments {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}

	cart.Merge(guestItems)

	now := time.Now()
	_, err = cartCollection.UpdateOne(ctx,
		bson.M{"userId": userObjectID},
		bson.M{
			"$set":         bson.M{"items": cart.Items, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to merge cart",
		})
	}

	return respondWithCart(c, ctx, userObjectID, "Guest cart merged")
}

// GetGuestProduct resolves the display snapshot a guest cart stores
// locally. Public, no cart is persisted server-side.
func GetGuestProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	var product models.Product
	if err := productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching product",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched product",
		Result: &fiber.Map{
			"product": fiber.Map{
				"productId":     product.ID.Hex(),
				"productName":   product.ProductName,
				"price":         product.Price,
				"images":        product.Images,
				"stockQuantity": product.StockQuantity,
			},
		},
	})
}

// GetCartTotals prices the current cart, applying an optional promo code.
func GetCartTotals(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userObjectID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	_, lines, err := resolveCart(ctx, userObjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart",
		})
	}

	discountFraction := 0.0
	promoCode := strings.ToUpper(strings.TrimSpace(c.Query("promo")))
	if promoCode != "" {
		var promo models.Promotion
		err := promoCollection.FindOne(ctx, bson.M{"code": promoCode}).Decode(&promo)
		if err != nil || !promo.Usable(time.Now()) {
			return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
				Status:  fiber.StatusNotFound,
				Message: "Invalid promo code",
			})
		}
		discountFraction = promo.Discount
	}

	subtotal := pricing.Subtotal(lines)

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Successfully calculated cart totals",
		Result: &fiber.Map{
			"subtotal":       pricing.Round2(subtotal),
			"discount":       pricing.Round2(pricing.PromoDiscount(subtotal, discountFraction)),
			"deliveryCharge": pricing.DeliveryCharge,
			"grandTotal":     pricing.Round2(pricing.GrandTotal(subtotal, discountFraction)),
		},
	})
}
