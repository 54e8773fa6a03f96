package controllers

import (
	"strconv"

	"orghub-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LogController exposes the read side of the activity audit trail. Writes
// happen only through the activity event bus.
type LogController struct {
	DB *gorm.DB
}

// NewLogController creates a new LogController.
func NewLogController(db *gorm.DB) *LogController {
	return &LogController{DB: db}
}

// ListByCompany returns the organization's full audit trail, newest first.
func (lc *LogController) ListByCompany(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	logs := make([]models.ActivityLog, 0)
	err := lc.DB.Where("company_code = ?", companyCode).
		Order("date DESC").Find(&logs).Error
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": logs})
}

// ListByUser returns a member's personal entries plus the company-wide ones
// (entries with no member id).
func (lc *LogController) ListByUser(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	logs := make([]models.ActivityLog, 0)
	err = lc.DB.Where("company_code = ? AND (member_id = ? OR member_id IS NULL)", companyCode, userID).
		Order("date DESC").Find(&logs).Error
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": logs})
}
