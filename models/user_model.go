package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var patchValidate = validator.New()

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserName  string             `bson:"userName" json:"userName" validate:"required"`
	Mobile    string             `bson:"mobile" json:"mobile" validate:"required"`
	Pincode   string             `bson:"pincode" json:"pincode" validate:"required"`
	Street    string             `bson:"street" json:"street" validate:"required"`
	City      string             `bson:"city" json:"city" validate:"required"`
	State     string             `bson:"state" json:"state" validate:"required"`
	Locality  string             `bson:"locality,omitempty" json:"locality,omitempty"`
	Landmark  string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Type      string             `bson:"type" json:"type" validate:"omitempty,oneof=home office other"`
	IsDefault bool               `bson:"isDefault" json:"isDefault"`
}

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Password   string             `bson:"password" json:"-"`
	Role       string             `bson:"role" json:"role"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	Addresses  []Address          `bson:"addresses" json:"addresses"`
	OTP        string             `bson:"otp,omitempty" json:"-"`
	OTPExpires time.Time          `bson:"otpExpires,omitempty" json:"-"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProfilePatch carries the editable profile fields. The email, when
// present, must be well formed before it reaches the database.
type ProfilePatch struct {
	Email string `json:"email" validate:"omitempty,email"`
}

func (p ProfilePatch) Validate() error {
	return patchValidate.Struct(p)
}

// FindAddress returns a pointer into the address book, nil when absent.
func (u *User) FindAddress(id primitive.ObjectID) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}

// ClearDefaultAddresses unsets isDefault on every address. Called before
// marking a new default so at most one sibling holds the flag.
func (u *User) ClearDefaultAddresses() {
	for i := range u.Addresses {
		u.Addresses[i].IsDefault = false
	}
}

// RemoveAddress deletes the address with the given id, reporting whether
// it was present.
func (u *User) RemoveAddress(id primitive.ObjectID) bool {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
			return true
		}
	}
	return false
}
