package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires member management. The company-code probe is public
// (used before signup); everything else requires authentication, and
// account mutations are founder/admin only.
func SetupUserRoutes(app *fiber.App, userController *controllers.UserController) {
	users := app.Group("/api/Users")
	adminOnly := utils.RequireRole(models.RoleFounder, models.RoleAdmin)

	users.Get("/check-community/:code", userController.CheckCompanyCode)

	users.Get("/company/:CompanyCode/count", utils.AuthMiddleware, userController.CompanyCounts)
	users.Get("/company/:CompanyCode", utils.AuthMiddleware, userController.ListMembers)
	users.Post("/", utils.AuthMiddleware, adminOnly, userController.CreateMember)
	users.Put("/updatePass/:id", utils.AuthMiddleware, userController.UpdatePassword)
	users.Put("/:id", utils.AuthMiddleware, adminOnly, userController.UpdateMember)
	users.Delete("/members/:id", utils.AuthMiddleware, adminOnly, userController.DeleteMember)
	users.Get("/:id", utils.AuthMiddleware, userController.GetMember)
}
