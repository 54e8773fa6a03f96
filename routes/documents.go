package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupDocumentRoutes wires document upload, download, listing and deletion.
// The bare id path lists by uploader, so it is registered last.
func SetupDocumentRoutes(app *fiber.App, documentController *controllers.DocumentController) {
	documents := app.Group("/api/Documents", utils.AuthMiddleware)

	documents.Get("/company/:companyCode", documentController.ListByCompany)
	documents.Get("/download/:id", documentController.Download)
	documents.Post("/task/upload", documentController.UploadTaskOutput)
	documents.Post("/", documentController.Upload)
	documents.Delete("/:id", documentController.Delete)
	documents.Get("/:id", documentController.ListByMember)
}
