package routes

import (
	orderController "github.com/prabhat63s/MRITTIKA/controllers/orders"
	"github.com/prabhat63s/MRITTIKA/middlewares"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	app.Post("/api/orders", middlewares.AuthMiddleware, orderController.PlaceOrder)
	app.Get("/api/orders/my", middlewares.AuthMiddleware, orderController.GetUserOrders)
	app.Get("/api/orders", middlewares.AuthMiddleware, middlewares.AdminOnly, orderController.GetAllOrders)
	app.Get("/api/orders/:orderId", middlewares.AuthMiddleware, orderController.GetOrderByID)
	app.Patch("/api/orders/:orderId/cancel", middlewares.AuthMiddleware, orderController.CancelOrder)
	app.Patch("/api/orders/:orderId/status", middlewares.AuthMiddleware, middlewares.AdminOnly, orderController.UpdateOrderStatus)
	// Payment updates also accept unauthenticated signed gateway callbacks,
	// so signature checking happens inside the handler.
	app.Patch("/api/orders/:orderId/payment", middlewares.OptionalAuth, orderController.UpdatePaymentStatus)
}
