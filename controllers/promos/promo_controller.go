package promoController

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prabhat63s/MRITTIKA/configs"
	"github.com/prabhat63s/MRITTIKA/models"
	"github.com/prabhat63s/MRITTIKA/responses"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var promoCollection *mongo.Collection = configs.GetCollection(configs.DB, "promotions")
var validate = validator.New()

// ValidatePromo resolves a code for checkout. Expired and inactive codes
// are reported the same as unknown ones.
func ValidatePromo(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Promo code is required",
		})
	}

	var promo models.Promotion
	err := promoCollection.FindOne(ctx, bson.M{"code": code}).Decode(&promo)
	if err == mongo.ErrNoDocuments {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Invalid promo code",
		})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching promo code",
		})
	}

	if !promo.Usable(time.Now()) {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Invalid promo code",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Promo code applied",
		Result: &fiber.Map{
			"data": fiber.Map{
				"code":     promo.Code,
				"discount": promo.Discount,
			},
		},
	})
}

// CreatePromo registers a new promotion. Admin only.
func CreatePromo(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var promo models.Promotion
	if err := c.BodyParser(&promo); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}

	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if err := validate.Struct(promo); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Code and a discount fraction between 0 and 1 are required",
		})
	}

	promo.ID = primitive.NewObjectID()
	promo.CreatedAt = time.Now()

	if _, err := promoCollection.InsertOne(ctx, promo); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
				Status:  fiber.StatusConflict,
				Message: "Promo code already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error creating promo code",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(responses.APIResponse{
		Status:  fiber.StatusCreated,
		Message: "Promo code created",
		Result:  &fiber.Map{"data": promo},
	})
}

// SeedPromotions inserts the two launch codes when the collection is
// empty. Safe to call on every boot.
func SeedPromotions(ctx context.Context) {
	count, err := promoCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		logrus.WithError(err).Warn("promo seed: count failed")
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	seeds := []interface{}{
		models.Promotion{ID: primitive.NewObjectID(), Code: "SAVE10", Discount: 0.10, IsActive: true, CreatedAt: now},
		models.Promotion{ID: primitive.NewObjectID(), Code: "SAVE20", Discount: 0.20, IsActive: true, CreatedAt: now},
	}
	if _, err := promoCollection.InsertMany(ctx, seeds); err != nil {
		logrus.WithError(err).Warn("promo seed: insert failed")
		return
	}
	logrus.Info("Seeded default promotions SAVE10 and SAVE20")
}
