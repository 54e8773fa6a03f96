package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupPerformanceRoutes wires task performance ratings. Rating is a
// reviewer action; reads are open to every authenticated member.
func SetupPerformanceRoutes(app *fiber.App, performanceController *controllers.PerformanceController) {
	performance := app.Group("/api/user_performance", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleFounder, models.RoleAdmin)

	performance.Post("/", adminOnly, performanceController.Create)
	performance.Get("/task/:taskId", performanceController.ListByTask)
	performance.Get("/:id", performanceController.ListByMember)
}
