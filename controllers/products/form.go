package productController

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prabhat63s/MRITTIKA/models"
)

const defaultMaterial = "Terracotta"

// productFromForm builds a Product from the multipart create form. Images
// are attached by the caller after upload.
func productFromForm(c *fiber.Ctx) (models.Product, error) {
	var product models.Product

	product.ProductName = c.FormValue("productName")
	product.ProductDetails = c.FormValue("productDetails")
	product.SKU = c.FormValue("sku")

	categoryID, err := primitive.ObjectIDFromHex(c.FormValue("category"))
	if err != nil {
		return product, errors.New("Invalid category ID")
	}
	product.Category = categoryID

	if product.Price, err = formFloat(c, "price", 0); err != nil {
		return product, err
	}
	if product.Weight, err = formFloat(c, "weight", 0); err != nil {
		return product, err
	}
	if product.StockQuantity, err = formInt(c, "stockQuantity", 0); err != nil {
		return product, err
	}
	if product.DiscountPercentage, err = formFloat(c, "discountPercentage", 10); err != nil {
		return product, err
	}

	if product.Dimensions.Height, err = formFloat(c, "dimensions.height", 0); err != nil {
		return product, err
	}
	if product.Dimensions.Width, err = formFloat(c, "dimensions.width", 0); err != nil {
		return product, err
	}
	if product.Dimensions.Depth, err = formFloat(c, "dimensions.depth", 0); err != nil {
		return product, err
	}

	product.Material = c.FormValue("material")
	if product.Material == "" {
		product.Material = defaultMaterial
	}

	product.IsHandmade = formBool(c, "isHandmade", true)
	product.LimitedEdition = formBool(c, "limitedEdition", false)
	product.IsActive = formBool(c, "isActive", true)

	return product, nil
}

// updateFromForm collects only the fields present in the update form.
func updateFromForm(c *fiber.Ctx) (bson.M, error) {
	var patch models.ProductPatch
	var err error

	patch.ProductName = formString(c, "productName")
	patch.ProductDetails = formString(c, "productDetails")
	patch.SKU = formString(c, "sku")
	patch.Material = formString(c, "material")

	if v := c.FormValue("category"); v != "" {
		categoryID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, errors.New("Invalid category ID")
		}
		patch.Category = &categoryID
	}

	if patch.Price, err = formFloatPtr(c, "price"); err != nil {
		return nil, err
	}
	if patch.Weight, err = formFloatPtr(c, "weight"); err != nil {
		return nil, err
	}
	if patch.DiscountPercentage, err = formFloatPtr(c, "discountPercentage"); err != nil {
		return nil, err
	}

	if v := c.FormValue("stockQuantity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.New("Invalid value for stockQuantity")
		}
		patch.StockQuantity = &n
	}

	if patch.DimHeight, err = formFloatPtr(c, "dimensions.height"); err != nil {
		return nil, err
	}
	if patch.DimWidth, err = formFloatPtr(c, "dimensions.width"); err != nil {
		return nil, err
	}
	if patch.DimDepth, err = formFloatPtr(c, "dimensions.depth"); err != nil {
		return nil, err
	}

	patch.IsHandmade = formBoolPtr(c, "isHandmade")
	patch.LimitedEdition = formBoolPtr(c, "limitedEdition")
	patch.IsActive = formBoolPtr(c, "isActive")

	return patch.SetDoc(), nil
}

func formString(c *fiber.Ctx, key string) *string {
	if v := c.FormValue(key); v != "" {
		return &v
	}
	return nil
}

func formFloatPtr(c *fiber.Ctx, key string) (*float64, error) {
	v := c.FormValue(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, errors.New("Invalid value for " + key)
	}
	return &f, nil
}

func formBoolPtr(c *fiber.Ctx, key string) *bool {
	if v := c.FormValue(key); v != "" {
		b := v == "true"
		return &b
	}
	return nil
}

func formFloat(c *fiber.Ctx, key string, fallback float64) (float64, error) {
	v := c.FormValue(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, errors.New("Invalid value for " + key)
	}
	return f, nil
}

func formInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	v := c.FormValue(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("Invalid value for " + key)
	}
	return n, nil
}

func formBool(c *fiber.Ctx, key string, fallback bool) bool {
	switch c.FormValue(key) {
	case "true":
		return true
	case "false":
		return false
	}
	return fallback
}

// validationMessage turns the first validator failure into a field-level
// message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "Invalid or missing field: " + verrs[0].Field()
	}
	return "Invalid request"
}
