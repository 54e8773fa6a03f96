package controllers

import (
	"strconv"
	"strings"

	"orghub-backend/models"
	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AnnouncementController handles company-wide announcements.
type AnnouncementController struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

// NewAnnouncementController creates a new AnnouncementController.
func NewAnnouncementController(db *gorm.DB, activity *services.ActivityService) *AnnouncementController {
	return &AnnouncementController{DB: db, Activity: activity}
}

// AnnouncementBody is the creation payload.
type AnnouncementBody struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListByCompany returns announcements newest first, optionally filtered by
// type via ?filter=.
func (nc *AnnouncementController) ListByCompany(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	q := nc.DB.Where("company_code = ?", companyCode)
	if filter := c.Query("filter"); filter != "" && filter != "all" {
		q = q.Where("type = ?", filter)
	}

	announcements := make([]models.Announcement, 0)
	if err := q.Order("time_stamp DESC").Find(&announcements).Error; err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": announcements})
}

// Create posts a new announcement authored by the authenticated admin.
func (nc *AnnouncementController) Create(c *fiber.Ctx) error {
	userID, role, companyCode := principal(c)

	var req AnnouncementBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "All fields are required"})
	}

	var author models.User
	if err := nc.DB.First(&author, userID).Error; err != nil {
		return failJSON(c, err)
	}

	announcement := models.Announcement{
		CompanyCode: companyCode,
		Type:        req.Type,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Author:      author.FullName(),
		AuthorRole:  role,
	}
	if err := nc.DB.Create(&announcement).Error; err != nil {
		return failJSON(c, err)
	}

	nc.Activity.Record(models.ActivityLog{
		Activity:    "New Announcement: " + announcement.Title,
		CompanyCode: companyCode,
		StatusType:  announcement.Type,
		LogType:     models.LogTypeAnnouncement,
	})

	return c.Status(201).JSON(fiber.Map{"success": true, "data": announcement})
}

// Delete removes an announcement.
func (nc *AnnouncementController) Delete(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	announcementID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid announcement ID"})
	}

	result := nc.DB.Where("id = ? AND company_code = ?", announcementID, companyCode).Delete(&models.Announcement{})
	if result.Error != nil {
		return failJSON(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Announcement not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Announcement deleted successfully"})
}
