package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupLogRoutes wires the read side of the activity audit trail.
func SetupLogRoutes(app *fiber.App, logController *controllers.LogController) {
	logs := app.Group("/api/Logs", utils.AuthMiddleware)

	logs.Get("/company/:CompanyCode", utils.RequireRole(models.RoleFounder), logController.ListByCompany)
	logs.Get("/user/:id", logController.ListByUser)
}
