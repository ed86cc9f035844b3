package productController

import (
	"context"
	"strconv"
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
	"github.com/prabhat63s/MRITTIKA/responses"
	"github.com/prabhat63s/MRITTIKA/storage"
)

var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

var validate = validator.New()

var blobStore storage.BlobStore = storage.NewDiskStore(configs.EnvUploadDir())

// GetAllProducts lists the catalog with optional conjunctive filters.
func GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	products := make([]models.Product, 0)
	cursor, err := productCollection.Find(ctx, filter.Query())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching products",
		})
	}
	if err = cursor.All(ctx, &products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error parsing products",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched products",
		Result: &fiber.Map{
			"totalProducts": len(products),
			"products":      products,
		},
	})
}

// GetLatestProducts returns the 4 most recently created products.
func GetLatestProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(4)

	products := make([]models.Product, 0)
	cursor, err := productCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching latest products",
		})
	}
	if err = cursor.All(ctx, &products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error parsing products",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched latest products",
		Result:  &fiber.Map{"products": products},
	})
}

func GetProductByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
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
		Result:  &fiber.Map{"product": product},
	})
}

// GetRelatedProducts returns up to 8 other active products from the same
// category.
func GetRelatedProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
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

	query := bson.M{
		"_id":      bson.M{"$ne": product.ID},
		"category": product.Category,
		"isActive": true,
	}

	related := make([]models.Product, 0)
	cursor, err := productCollection.Find(ctx, query, options.Find().SetLimit(8))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching related products",
		})
	}
	if err = cursor.All(ctx, &related); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error parsing products",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched related products",
		Result:  &fiber.Map{"products": related},
	})
}

// CreateProduct handles the admin multipart form. Images are mandatory and
// an upload failure aborts the whole creation.
func CreateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	product, err := productFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "At least one product image is required",
		})
	}

	for _, file := range form.File["images"] {
		url, err := blobStore.Save(file)
		if err != nil {
			logrus.WithError(err).Error("product image upload failed")
			return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Image upload failed",
			})
		}
		product.Images = append(product.Images, url)
	}

	if err := validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: validationMessage(err),
		})
	}

	var existing models.Product
	err = productCollection.FindOne(ctx, bson.M{"sku": product.SKU}).Decode(&existing)
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
			Status:  fiber.StatusConflict,
			Message: "Product with this SKU already exists",
		})
	}
	if err != mongo.ErrNoDocuments {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error checking SKU",
		})
	}

	now := time.Now()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := productCollection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
				Status:  fiber.StatusConflict,
				Message: "Product with this SKU already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error inserting product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(responses.APIResponse{
		Status:  fiber.StatusCreated,
		Message: "Product created successfully",
		Result:  &fiber.Map{"product": product},
	})
}

// UpdateProduct merges retained images with any newly uploaded ones and
// applies the form fields.
func UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	updateData, err := updateFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	images := []string{}
	form, formErr := c.MultipartForm()
	if formErr == nil {
		images = append(images, form.Value["existingImages"]...)
		for _, file := range form.File["images"] {
			url, err := blobStore.Save(file)
			if err != nil {
				logrus.WithError(err).Error("product image upload failed")
				return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
					Status:  fiber.StatusInternalServerError,
					Message: "Image upload failed",
				})
			}
			images = append(images, url)
		}
	}
	if len(images) > 0 {
		updateData["images"] = images
	}
	updateData["updatedAt"] = time.Now()

	var updated models.Product
	err = productCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$set": updateData},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(responses.APIResponse{
				Status:  fiber.StatusConflict,
				Message: "Product with this SKU already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating product",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Product updated successfully",
		Result:  &fiber.Map{"product": updated},
	})
}

func DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	// Orders keep their own snapshot of name/price so historical reads
	// survive a hard delete.
	result, err := productCollection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error deleting product",
		})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Product deleted successfully",
	})
}

func ToggleProductStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
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

	product.IsActive = !product.IsActive
	_, err = productCollection.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$set": bson.M{"isActive": product.IsActive, "updatedAt": time.Now()},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating product status",
		})
	}

	message := "Product is now inactive"
	if product.IsActive {
		message = "Product is now active"
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result:  &fiber.Map{"product": product},
	})
}

// filterFromQuery maps the list query string onto a ProductFilter.
func filterFromQuery(c *fiber.Ctx) (models.ProductFilter, error) {
	var filter models.ProductFilter

	if v := c.Query("category"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "Invalid category ID")
		}
		filter.Category = &id
	}

	var err error
	if filter.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinDiscount, err = queryFloat(c, "discount"); err != nil {
		return filter, err
	}

	filter.InStock = c.Query("inStock") == "true"
	filter.Search = c.Query("search")
	filter.Material = c.Query("material")

	if v := c.Query("isHandmade"); v != "" {
		b := v == "true"
		filter.IsHandmade = &b
	}
	if v := c.Query("limitedEdition"); v != "" {
		b := v == "true"
		filter.LimitedEdition = &b
	}
	if v := c.Query("isActive"); v != "" {
		b := v == "true"
		filter.IsActive = &b
	}

	return filter, nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid value for "+key)
	}
	return &f, nil
}
