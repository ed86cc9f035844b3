package addressController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prabhat63s/MRITTIKA/configs"
	"github.com/prabhat63s/MRITTIKA/models"
	"github.com/prabhat63s/MRITTIKA/responses"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var userCollection *mongo.Collection = configs.GetCollection(configs.DB, "users")
var validate = validator.New()

// requireOwnership checks that the caller is the addressed user or an
// admin BEFORE any lookup happens, so outsiders cannot probe which user
// ids exist. Writes the response and reports ok=false on failure.
func requireOwnership(c *fiber.Ctx) (primitive.ObjectID, bool) {
	callerID, _ := c.Locals("userId").(string)
	role, _ := c.Locals("role").(string)

	if callerID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
		return primitive.NilObjectID, false
	}

	targetParam := c.Params("userId")
	if callerID != targetParam && role != models.RoleAdmin {
		_ = c.Status(fiber.StatusForbidden).JSON(responses.APIResponse{
			Status:  fiber.StatusForbidden,
			Message: "Not allowed to access this address book",
		})
		return primitive.NilObjectID, false
	}

	targetID, err := primitive.ObjectIDFromHex(targetParam)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
		})
		return primitive.NilObjectID, false
	}
	return targetID, true
}

// fetchUser loads the address book owner. Writes the response and reports
// ok=false when the user cannot be loaded.
func fetchUser(c *fiber.Ctx, ctx context.Context, userID primitive.ObjectID) (*models.User, bool) {
	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		_ = c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "User not found",
		})
		return nil, false
	} else if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching user data",
		})
		return nil, false
	}
	return &user, true
}

// saveAddresses persists the whole embedded address list in one $set so
// readers never observe a partially edited book.
func saveAddresses(c *fiber.Ctx, ctx context.Context, userID primitive.ObjectID, addresses []models.Address) bool {
	update := bson.M{"$set": bson.M{"addresses": addresses}}
	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(responses.APIResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error saving addresses",
		})
		return false
	}
	return true
}

// GetAddresses lists the user's saved addresses.
func GetAddresses(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := requireOwnership(c)
	if !ok {
		return nil
	}

	user, ok := fetchUser(c, ctx, userID)
	if !ok {
		return nil
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Addresses fetched successfully",
		Result:  &fiber.Map{"data": user.Addresses},
	})
}

// AddAddress appends a new address, optionally making it the default.
func AddAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := requireOwnership(c)
	if !ok {
		return nil
	}

	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}
	if err := validate.Struct(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "All address fields are required",
		})
	}

	user, ok := fetchUser(c, ctx, userID)
	if !ok {
		return nil
	}

	address.ID = primitive.NewObjectID()
	if address.Type == "" {
		address.Type = "home"
	}
	if address.IsDefault {
		user.ClearDefaultAddresses()
	}
	user.Addresses = append(user.Addresses, address)

	if !saveAddresses(c, ctx, userID, user.Addresses) {
		return nil
	}

	return c.Status(fiber.StatusCreated).JSON(responses.APIResponse{
		Status:  fiber.StatusCreated,
		Message: "Address added successfully",
		Result:  &fiber.Map{"data": address},
	})
}

// GetSingleAddress returns one address by id.
func GetSingleAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := requireOwnership(c)
	if !ok {
		return nil
	}

	addressID, err := primitive.ObjectIDFromHex(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address ID format",
		})
	}

	user, ok := fetchUser(c, ctx, userID)
	if !ok {
		return nil
	}

	address := user.FindAddress(addressID)
	if address == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Address fetched successfully",
		Result:  &fiber.Map{"data": address},
	})
}

// UpdateAddress edits an address in place; isDefault=true unsets every
// sibling first.
func UpdateAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := requireOwnership(c)
	if !ok {
		return nil
	}

	addressID, err := primitive.ObjectIDFromHex(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address ID format",
		})
	}

	var reqBody models.Address
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}
	if err := validate.Struct(reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "All address fields are required",
		})
	}

	user, ok := fetchUser(c, ctx, userID)
	if !ok {
		return nil
	}

	address := user.FindAddress(addressID)
	if address == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found",
		})
	}

	if reqBody.IsDefault {
		user.ClearDefaultAddresses()
	}
	reqBody.ID = addressID
	if reqBody.Type == "" {
		reqBody.Type = address.Type
	}
	*address = reqBody

	if !saveAddresses(c, ctx, userID, user.Addresses) {
		return nil
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Address updated successfully",
		Result:  &fiber.Map{"data": address},
	})
}

// DeleteAddress removes an address from the book.
func DeleteAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := requireOwnership(c)
	if !ok {
		return nil
	}

	addressID, err := primitive.ObjectIDFromHex(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid address ID format",
		})
	}

	user, ok := fetchUser(c, ctx, userID)
	if !ok {
		return nil
	}

	if !user.RemoveAddress(addressID) {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found",
		})
	}

	if !saveAddresses(c, ctx, userID, user.Addresses) {
		return nil
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Address deleted successfully",
	})
}
