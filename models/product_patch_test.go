package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func strPtr(v string) *string { return &v }

func TestProductPatchEmpty(t *testing.T) {
	require.Equal(t, bson.M{}, ProductPatch{}.SetDoc())
}

func TestProductPatchDimensionsUseDottedPaths(t *testing.T) {
	doc := ProductPatch{DimHeight: floatPtr(20)}.SetDoc()

	// Updating one axis must not replace the whole subdocument, which
	// would zero out the axes the request never mentioned.
	require.Equal(t, bson.M{"dimensions.height": 20.0}, doc)
	require.NotContains(t, doc, "dimensions")
}

func TestProductPatchAllDimensions(t *testing.T) {
	doc := ProductPatch{
		DimHeight: floatPtr(20),
		DimWidth:  floatPtr(15),
		DimDepth:  floatPtr(10),
	}.SetDoc()

	require.Equal(t, bson.M{
		"dimensions.height": 20.0,
		"dimensions.width":  15.0,
		"dimensions.depth":  10.0,
	}, doc)
}

func TestProductPatchScalarFields(t *testing.T) {
	doc := ProductPatch{
		ProductName: strPtr("Clay Bowl"),
		Price:       floatPtr(450),
		IsActive:    boolPtr(false),
	}.SetDoc()

	require.Equal(t, bson.M{
		"productName": "Clay Bowl",
		"price":       450.0,
		"isActive":    false,
	}, doc)
}

func TestCategoryPatchEmpty(t *testing.T) {
	require.Empty(t, CategoryPatch{}.SetDoc())
}

func TestCategoryPatchPartial(t *testing.T) {
	doc := CategoryPatch{Name: "Vases"}.SetDoc()
	require.Equal(t, bson.M{"name": "Vases"}, doc)
}
