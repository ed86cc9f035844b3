package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/prabhat63s/MRITTIKA/configs"
	promoController "github.com/prabhat63s/MRITTIKA/controllers/promos"
	"github.com/prabhat63s/MRITTIKA/routes"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	configs.EnsureIndexes(configs.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	promoController.SeedPromotions(ctx)
	cancel()

	app := fiber.New()

	app.Static("/uploads", configs.EnvUploadDir())

	routes.UserRoutes(app)
	routes.AccountRoutes(app)
	routes.AddressRoutes(app)
	routes.ProductRoutes(app)
	routes.CartRoutes(app)
	routes.OrderRoutes(app)
	routes.PromoRoutes(app)

	addr := ":" + configs.EnvPort()
	logrus.WithField("addr", addr).Info("Starting server")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
