package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupInventoryRoutes wires the inventory ledger endpoints. Reads are open
// to every authenticated member; mutations are founder/admin only.
func SetupInventoryRoutes(app *fiber.App, inventoryController *controllers.InventoryController) {
	inventory := app.Group("/api/Inventory", utils.AuthMiddleware)
	adminOnly := utils.RequireRole(models.RoleFounder, models.RoleAdmin)

	inventory.Get("/company/:companyCode", inventoryController.ListItems)
	inventory.Post("/", adminOnly, inventoryController.CreateItem)
	inventory.Put("/:id", adminOnly, inventoryController.UpdateItem)
	inventory.Delete("/:id", adminOnly, inventoryController.DeleteItem)
	inventory.Get("/:itemId", inventoryController.GetItem)
}
