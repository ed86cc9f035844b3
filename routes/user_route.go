package routes

import (
	userController "github.com/prabhat63s/MRITTIKA/controllers/user"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	app.Post("/api/users/register", userController.Register)
	app.Post("/api/users/login", userController.Login)
	app.Post("/api/users/send-otp", userController.SendOtp)
	app.Post("/api/users/resend-otp", userController.ResendOtp)
	app.Post("/api/users/verify-otp", userController.VerifyOtp)
	app.Post("/api/users/reset-password", userController.ResetPassword)
}
