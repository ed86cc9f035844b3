package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promotion replaces the old pair of hardcoded cart codes. Discount is a
// fraction of the subtotal, e.g. 0.10 for 10% off.
type Promotion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code      string             `bson:"code" json:"code" validate:"required"`
	Discount  float64            `bson:"discount" json:"discount" validate:"gt=0,lte=1"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	ValidFrom *time.Time         `bson:"validFrom,omitempty" json:"validFrom,omitempty"`
	ValidTo   *time.Time         `bson:"validTo,omitempty" json:"validTo,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Usable reports whether the promotion applies at the given instant.
func (p Promotion) Usable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && now.After(*p.ValidTo) {
		return false
	}
	return true
}
