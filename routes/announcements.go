package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAnnouncementRoutes wires company announcements.
func SetupAnnouncementRoutes(app *fiber.App, announcementController *controllers.AnnouncementController) {
	announcements := app.Group("/api/Announcements", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleFounder, models.RoleAdmin)

	announcements.Get("/company/:CompanyCode", announcementController.ListByCompany)
	announcements.Post("/", adminOnly, announcementController.Create)
	announcements.Delete("/:id", adminOnly, announcementController.Delete)
}
