package routes

import (
	"orghub-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires login, session introspection and organization
// registration. All of these are public.
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	api := app.Group("/api")

	api.Post("/login", authController.Login)
	api.Get("/session", authController.Session)
	api.Post("/logout", authController.Logout)
	api.Post("/Organization/register", authController.RegisterOrganization)
}
