package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestProductFilterEmpty(t *testing.T) {
	require.Equal(t, bson.M{}, ProductFilter{}.Query())
}

func TestProductFilterPriceRange(t *testing.T) {
	q := ProductFilter{MinPrice: floatPtr(100), MaxPrice: floatPtr(500)}.Query()
	require.Equal(t, bson.M{"price": bson.M{"$gte": 100.0, "$lte": 500.0}}, q)

	q = ProductFilter{MinPrice: floatPtr(100)}.Query()
	require.Equal(t, bson.M{"price": bson.M{"$gte": 100.0}}, q)
}

func TestProductFilterCombinesWithAnd(t *testing.T) {
	category := primitive.NewObjectID()
	q := ProductFilter{
		Category:    &category,
		MinDiscount: floatPtr(20),
		InStock:     true,
		Material:    "Terracotta",
		IsActive:    boolPtr(true),
	}.Query()

	require.Equal(t, category, q["category"])
	require.Equal(t, bson.M{"$gte": 20.0}, q["discountPercentage"])
	require.Equal(t, bson.M{"$gt": 0}, q["stockQuantity"])
	require.Equal(t, "Terracotta", q["material"])
	require.Equal(t, true, q["isActive"])
	require.Len(t, q, 5)
}

func TestProductFilterSearchSpansNameAndDetails(t *testing.T) {
	q := ProductFilter{Search: "vase"}.Query()

	or, ok := q["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	pattern := or[0].(bson.M)["productName"].(primitive.Regex)
	require.Equal(t, "vase", pattern.Pattern)
	require.Equal(t, "i", pattern.Options)
}

func TestProductFilterSearchEscapesMetacharacters(t *testing.T) {
	q := ProductFilter{Search: "2.5 (set)"}.Query()

	or := q["$or"].(bson.A)
	pattern := or[0].(bson.M)["productName"].(primitive.Regex)
	require.Equal(t, `2\.5 \(set\)`, pattern.Pattern)
}

func TestProductFilterBoolFlags(t *testing.T) {
	q := ProductFilter{IsHandmade: boolPtr(true), LimitedEdition: boolPtr(false)}.Query()
	require.Equal(t, true, q["isHandmade"])
	require.Equal(t, false, q["limitedEdition"])
}
