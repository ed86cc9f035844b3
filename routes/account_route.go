package routes

import (
	accountController "github.com/prabhat63s/MRITTIKA/controllers/accounts"
	"github.com/prabhat63s/MRITTIKA/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AccountRoutes(app *fiber.App) {
	app.Get("/api/users/profile", middlewares.AuthMiddleware, accountController.GetProfile)
	app.Put("/api/users/profile", middlewares.AuthMiddleware, accountController.UpdateProfile)

	app.Get("/api/users", middlewares.AuthMiddleware, middlewares.AdminOnly, accountController.GetAllUsers)
	app.Get("/api/users/:userId", middlewares.AuthMiddleware, middlewares.AdminOnly, accountController.GetUserByID)
	app.Patch("/api/users/:userId/activation", middlewares.AuthMiddleware, middlewares.AdminOnly, accountController.ToggleUserActivation)
}
