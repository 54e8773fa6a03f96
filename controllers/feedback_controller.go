package controllers

import (
	"strconv"
	"strings"

	"orghub-backend/models"
	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FeedbackController handles member feedback submission and triage.
type FeedbackController struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

// NewFeedbackController creates a new FeedbackController.
func NewFeedbackController(db *gorm.DB, activity *services.ActivityService) *FeedbackController {
	return &FeedbackController{DB: db, Activity: activity}
}

// SubmitFeedbackRequest is the submission payload.
type SubmitFeedbackRequest struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// feedbackRow is the listing projection with the author's name joined.
type feedbackRow struct {
	models.Feedback
	FeedbackByName string `json:"feedbackByName"`
}

// ListByCompany returns all feedback of the organization, newest first.
func (fc *FeedbackController) ListByCompany(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	rows := make([]feedbackRow, 0)
	err := fc.DB.Model(&models.Feedback{}).
		Select("feedbacks.*, users.first_name || ' ' || users.last_name AS feedback_by_name").
		Joins("LEFT JOIN users ON users.id = feedbacks.feedback_by").
		Where("feedbacks.company_code = ?", companyCode).
		Order("feedbacks.date_submitted DESC").
		Scan(&rows).Error
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "feedback": rows})
}

// Get returns one feedback entry.
func (fc *FeedbackController) Get(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	feedbackID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid feedback ID"})
	}

	var row feedbackRow
	err = fc.DB.Model(&models.Feedback{}).
		Select("feedbacks.*, users.first_name || ' ' || users.last_name AS feedback_by_name").
		Joins("JOIN users ON users.id = feedbacks.feedback_by").
		Where("feedbacks.id = ? AND feedbacks.company_code = ?", feedbackID, companyCode).
		Scan(&row).Error
	if err != nil {
		return failJSON(c, err)
	}
	if row.ID == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": row})
}

// ListByMember returns feedback submitted by one member.
func (fc *FeedbackController) ListByMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	feedback := make([]models.Feedback, 0)
	err = fc.DB.Where("company_code = ? AND feedback_by = ?", companyCode, memberID).
		Order("date_submitted DESC").Find(&feedback).Error
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": feedback})
}

// Submit files feedback for the authenticated member.
func (fc *FeedbackController) Submit(c *fiber.Ctx) error {
	userID, _, companyCode := principal(c)

	var req SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Subject and message are required"})
	}

	feedback := models.Feedback{
		CompanyCode: companyCode,
		FeedbackBy:  userID,
		Subject:     strings.TrimSpace(req.Subject),
		Category:    req.Category,
		Message:     req.Message,
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		return failJSON(c, err)
	}

	fc.Activity.Record(models.ActivityLog{
		Activity:    "New Feedback: " + feedback.Subject,
		CompanyCode: companyCode,
		StatusType:  feedback.Status,
		MemberID:    &feedback.FeedbackBy,
		LogType:     models.LogTypeFeedback,
	})

	return c.Status(201).JSON(fiber.Map{"success": true, "data": feedback})
}

// UpdateStatus moves a feedback entry through its triage states.
func (fc *FeedbackController) UpdateStatus(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	feedbackID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid feedback ID"})
	}

	var feedback models.Feedback
	if err := fc.DB.Where("id = ? AND company_code = ?", feedbackID, companyCode).First(&feedback).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Feedback not found"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || !models.ValidFeedbackStatus(req.Status) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown feedback status"})
	}

	feedback.Status = req.Status
	if err := fc.DB.Save(&feedback).Error; err != nil {
		return failJSON(c, err)
	}

	fc.Activity.Record(models.ActivityLog{
		Activity:    "Feedback Update: " + feedback.Subject,
		CompanyCode: companyCode,
		StatusType:  feedback.Status,
		MemberID:    &feedback.FeedbackBy,
		LogType:     models.LogTypeFeedback,
	})

	return c.JSON(fiber.Map{"success": true, "data": feedback})
}
