package routes

import (
	promoController "github.com/prabhat63s/MRITTIKA/controllers/promos"
	"github.com/prabhat63s/MRITTIKA/middlewares"

	"github.com/gofiber/fiber/v2"
)

func PromoRoutes(app *fiber.App) {
	app.Get("/api/promos/:code", promoController.ValidatePromo)
	app.Post("/api/promos", middlewares.AuthMiddleware, middlewares.AdminOnly, promoController.CreatePromo)
}
