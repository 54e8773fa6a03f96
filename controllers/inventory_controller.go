package controllers

import (
	"strconv"

	"orghub-backend/models"
	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
)

// InventoryController exposes the inventory ledger over HTTP.
type InventoryController struct {
	Ledger   *services.InventoryService
	Activity *services.ActivityService
}

// NewInventoryController creates a new InventoryController.
func NewInventoryController(ledger *services.InventoryService, activity *services.ActivityService) *InventoryController {
	return &InventoryController{Ledger: ledger, Activity: activity}
}

// ItemRequestBody is the create/update payload for an inventory item.
type ItemRequestBody struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// ListItems returns all items of the caller's organization plus the
// aggregate stock counts.
func (ic *InventoryController) ListItems(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	// The path carries the company code for symmetry with the frontend
	// routes, but scoping always uses the session's code.
	items, stats, err := ic.Ledger.ListItems(companyCode)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"data":           items,
		"itemCount":      stats.Total,
		"itemInStock":    stats.InStock,
		"itemLowOnStock": stats.LowOnStock,
		"itemOutStock":   stats.OutOfStock,
	})
}

// GetItem returns one item by id.
func (ic *InventoryController) GetItem(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	itemID, err := strconv.ParseUint(c.Params("itemId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}

	item, err := ic.Ledger.GetItem(companyCode, uint(itemID))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// CreateItem adds a new stock line.
func (ic *InventoryController) CreateItem(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	var req ItemRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	item, err := ic.Ledger.CreateItem(companyCode, req.Name, req.Category, req.Quantity)
	if err != nil {
		return failJSON(c, err)
	}

	ic.Activity.Record(models.ActivityLog{
		Activity:    "New Item Added: " + item.Name,
		CompanyCode: companyCode,
		StatusType:  item.Category,
		LogType:     models.LogTypeInventory,
	})

	return c.Status(201).JSON(fiber.Map{"success": true, "data": item})
}

// UpdateItem overwrites an item's mutable fields.
func (ic *InventoryController) UpdateItem(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}

	var req ItemRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	item, err := ic.Ledger.UpdateItem(companyCode, uint(itemID), req.Name, req.Category, req.Quantity)
	if err != nil {
		return failJSON(c, err)
	}

	ic.Activity.Record(models.ActivityLog{
		Activity:    "Item Restocked: " + item.Name,
		CompanyCode: companyCode,
		StatusType:  item.Category,
		LogType:     models.LogTypeInventory,
	})

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// DeleteItem removes an item. Deleting an already-deleted id fails with 404.
func (ic *InventoryController) DeleteItem(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid item ID"})
	}

	if err := ic.Ledger.DeleteItem(companyCode, uint(itemID)); err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
