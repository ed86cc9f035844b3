package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Dimensions struct {
	Height float64 `bson:"height" json:"height" validate:"gte=0"`
	Width  float64 `bson:"width" json:"width" validate:"gte=0"`
	Depth  float64 `bson:"depth" json:"depth" validate:"gte=0"`
}

type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductName        string             `bson:"productName" json:"productName" validate:"required"`
	Category           primitive.ObjectID `bson:"category" json:"category" validate:"required"`
	ProductDetails     string             `bson:"productDetails" json:"productDetails" validate:"required"`
	Price              float64            `bson:"price" json:"price" validate:"gte=0"`
	SKU                string             `bson:"sku" json:"sku" validate:"required"`
	StockQuantity      int                `bson:"stockQuantity" json:"stockQuantity" validate:"gte=0"`
	Dimensions         Dimensions         `bson:"dimensions" json:"dimensions"`
	Weight             float64            `bson:"weight" json:"weight" validate:"gte=0"`
	Material           string             `bson:"material" json:"material"`
	Images             []string           `bson:"images" json:"images" validate:"required,min=1"`
	IsHandmade         bool               `bson:"isHandmade" json:"isHandmade"`
	LimitedEdition     bool               `bson:"limitedEdition" json:"limitedEdition"`
	DiscountPercentage float64            `bson:"discountPercentage" json:"discountPercentage" validate:"gte=0,lte=100"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductFilter holds the optional catalog list constraints. All set fields
// combine with AND semantics.
type ProductFilter struct {
	Category       *primitive.ObjectID
	MinPrice       *float64
	MaxPrice       *float64
	MinDiscount    *float64
	InStock        bool
	Search         string
	IsHandmade     *bool
	LimitedEdition *bool
	Material       string
	IsActive       *bool
}

// Query builds the Mongo filter document.
func (f ProductFilter) Query() bson.M {
	query := bson.M{}

	if f.Category != nil {
		query["category"] = *f.Category
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}

	if f.MinDiscount != nil {
		query["discountPercentage"] = bson.M{"$gte": *f.MinDiscount}
	}

	if f.InStock {
		query["stockQuantity"] = bson.M{"$gt": 0}
	}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexEscape(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"productName": pattern},
			bson.M{"productDetails": pattern},
		}
	}

	if f.IsHandmade != nil {
		query["isHandmade"] = *f.IsHandmade
	}
	if f.LimitedEdition != nil {
		query["limitedEdition"] = *f.LimitedEdition
	}
	if f.Material != "" {
		query["material"] = f.Material
	}
	if f.IsActive != nil {
		query["isActive"] = *f.IsActive
	}

	return query
}

// ProductPatch holds the optional admin edit fields. Only set fields enter
// the update document.
type ProductPatch struct {
	ProductName        *string
	ProductDetails     *string
	SKU                *string
	Material           *string
	Category           *primitive.ObjectID
	Price              *float64
	Weight             *float64
	DiscountPercentage *float64
	StockQuantity      *int
	DimHeight          *float64
	DimWidth           *float64
	DimDepth           *float64
	IsHandmade         *bool
	LimitedEdition     *bool
	IsActive           *bool
}

// SetDoc builds the $set document. Dimension axes use dotted paths so a
// partial update leaves the other axes untouched.
func (p ProductPatch) SetDoc() bson.M {
	doc := bson.M{}

	if p.ProductName != nil {
		doc["productName"] = *p.ProductName
	}
	if p.ProductDetails != nil {
		doc["productDetails"] = *p.ProductDetails
	}
	if p.SKU != nil {
		doc["sku"] = *p.SKU
	}
	if p.Material != nil {
		doc["material"] = *p.Material
	}
	if p.Category != nil {
		doc["category"] = *p.Category
	}
	if p.Price != nil {
		doc["price"] = *p.Price
	}
	if p.Weight != nil {
		doc["weight"] = *p.Weight
	}
	if p.DiscountPercentage != nil {
		doc["discountPercentage"] = *p.DiscountPercentage
	}
	if p.StockQuantity != nil {
		doc["stockQuantity"] = *p.StockQuantity
	}
	if p.DimHeight != nil {
		doc["dimensions.height"] = *p.DimHeight
	}
	if p.DimWidth != nil {
		doc["dimensions.width"] = *p.DimWidth
	}
	if p.DimDepth != nil {
		doc["dimensions.depth"] = *p.DimDepth
	}
	if p.IsHandmade != nil {
		doc["isHandmade"] = *p.IsHandmade
	}
	if p.LimitedEdition != nil {
		doc["limitedEdition"] = *p.LimitedEdition
	}
	if p.IsActive != nil {
		doc["isActive"] = *p.IsActive
	}

	return doc
}

// CategoryPatch carries the optional category edit fields.
type CategoryPatch struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// SetDoc returns only the populated fields; empty means nothing to update.
func (p CategoryPatch) SetDoc() bson.M {
	doc := bson.M{}
	if p.Name != "" {
		doc["name"] = p.Name
	}
	if p.Description != "" {
		doc["description"] = p.Description
	}
	if p.Image != "" {
		doc["image"] = p.Image
	}
	return doc
}

// regexEscape quotes regex metacharacters so search stays a plain
// substring match.
func regexEscape(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
