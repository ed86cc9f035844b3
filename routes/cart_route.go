package routes

import (
	cartController "github.com/prabhat63s/MRITTIKA/controllers/cart"
	"github.com/prabhat63s/MRITTIKA/middlewares"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App) {
	app.Get("/api/cart/guest/:productId", cartController.GetGuestProduct)
	app.Post("/api/cart", middlewares.AuthMiddleware, cartController.AddToCart)
	app.Get("/api/cart", middlewares.AuthMiddleware, cartController.GetCart)
	app.Get("/api/cart/totals", middlewares.AuthMiddleware, cartController.GetCartTotals)
	app.Put("/api/cart/update", middlewares.AuthMiddleware, cartController.UpdateCartQuantity)
	app.Post("/api/cart/merge", middlewares.AuthMiddleware, cartController.MergeGuestCart)
	app.Delete("/api/cart/:productId", middlewares.AuthMiddleware, cartController.RemoveFromCart)
}
