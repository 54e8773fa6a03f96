package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupFeedbackRoutes wires feedback submission and triage.
func SetupFeedbackRoutes(app *fiber.App, feedbackController *controllers.FeedbackController) {
	feedback := app.Group("/api/Feedback", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleFounder, models.RoleAdmin)

	feedback.Get("/company/:CompanyCode", adminOnly, feedbackController.ListByCompany)
	feedback.Get("/member/:id", feedbackController.ListByMember)
	feedback.Post("/", feedbackController.Submit)
	feedback.Put("/:id/status", adminOnly, feedbackController.UpdateStatus)
	feedback.Get("/:id", feedbackController.Get)
}
