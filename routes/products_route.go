package routes

import (
	categoryController "github.com/prabhat63s/MRITTIKA/controllers/categories"
	productController "github.com/prabhat63s/MRITTIKA/controllers/products"
	"github.com/prabhat63s/MRITTIKA/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductRoutes(app *fiber.App) {
	app.Get("/api/products", productController.GetAllProducts)
	app.Get("/api/products/latest", productController.GetLatestProducts)
	app.Get("/api/products/:id", productController.GetProductByID)
	app.Get("/api/products/:id/related", productController.GetRelatedProducts)
	app.Post("/api/products", middlewares.AuthMiddleware, middlewares.AdminOnly, productController.CreateProduct)
	app.Put("/api/products/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, productController.UpdateProduct)
	app.Delete("/api/products/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, productController.DeleteProduct)
	app.Patch("/api/products/:id/status", middlewares.AuthMiddleware, middlewares.AdminOnly, productController.ToggleProductStatus)

	app.Get("/api/categories", categoryController.GetAllCategories)
	app.Post("/api/categories", middlewares.AuthMiddleware, middlewares.AdminOnly, categoryController.CreateCategory)
	app.Put("/api/categories/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, categoryController.UpdateCategory)
	app.Delete("/api/categories/:id", middlewares.AuthMiddleware, middlewares.AdminOnly, categoryController.DeleteCategory)
}
