package routes

import (
	addressController "github.com/prabhat63s/MRITTIKA/controllers/addresses"
	"github.com/prabhat63s/MRITTIKA/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AddressRoutes(app *fiber.App) {
	app.Get("/api/users/:userId/addresses", middlewares.AuthMiddleware, addressController.GetAddresses)
	app.Post("/api/users/:userId/addresses", middlewares.AuthMiddleware, addressController.AddAddress)
	app.Get("/api/users/:userId/addresses/:addressId", middlewares.AuthMiddleware, addressController.GetSingleAddress)
	app.Put("/api/users/:userId/addresses/:addressId", middlewares.AuthMiddleware, addressController.UpdateAddress)
	app.Delete("/api/users/:userId/addresses/:addressId", middlewares.AuthMiddleware, addressController.DeleteAddress)
}
