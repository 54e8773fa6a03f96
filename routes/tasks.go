package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupTaskRoutes wires task management.
func SetupTaskRoutes(app *fiber.App, taskController *controllers.TaskController) {
	tasks := app.Group("/api/Tasks", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleFounder, models.RoleAdmin)

	tasks.Get("/company/:CompanyCode", taskController.ListByCompany)
	tasks.Get("/member/:memberId", taskController.ListByMember)
	tasks.Post("/", adminOnly, taskController.CreateTask)
	tasks.Post("/review/:id", adminOnly, taskController.ReviewTask)
	tasks.Put("/:id", taskController.UpdateTask)
	tasks.Delete("/:id", adminOnly, taskController.DeleteTask)
	tasks.Get("/:id", taskController.GetTask)
}
