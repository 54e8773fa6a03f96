package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupItemRequestRoutes wires the request workflow. Members submit and see
// their own requests; approval and rejection are founder/admin only.
func SetupItemRequestRoutes(app *fiber.App, requestController *controllers.ItemRequestController) {
	requests := app.Group("/api/Item_Requests", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleFounder, models.RoleAdmin)

	requests.Post("/", requestController.Submit)
	requests.Get("/company/pending/:CompanyCode", adminOnly, requestController.ListPending)
	requests.Get("/user/:userId", requestController.ListByUser)
	requests.Get("/getRequest/:requestId", requestController.Get)
	requests.Get("/approval/:requestId", adminOnly, requestController.Get)
	requests.Put("/approval/:requestId/approve", adminOnly, requestController.Approve)
	requests.Post("/approval/:requestId/reject", adminOnly, requestController.Reject)
}
