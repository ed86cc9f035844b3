package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("product not in cart")
)

// CartItem references a product by id only; display fields are resolved
// live from the catalog at read time.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity" validate:"required,min=1"`
}

// Cart is the server-persisted cart, exactly one per user.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GuestItem is one line of a client-persisted guest cart sent up for
// merging after login.
type GuestItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// Add puts the product in the cart, summing quantities when the line
// already exists. A product never occupies two lines.
func (c *Cart) Add(productID primitive.ObjectID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

// SetQuantity replaces a line's quantity.
func (c *Cart) SetQuantity(productID primitive.ObjectID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove deletes a line. Removing an absent product is a no-op.
func (c *Cart) Remove(productID primitive.ObjectID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Merge folds guest items into the cart: quantities sum on collision,
// new products append. Lines with quantity < 1 are dropped.
func (c *Cart) Merge(items []CartItem) {
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		// Add only errors on quantity < 1, which is filtered above.
		_ = c.Add(item.ProductID, item.Quantity)
	}
}
