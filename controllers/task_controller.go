package controllers

import (
	"strconv"
	"strings"
	"time"

	"orghub-backend/models"
	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TaskController manages task assignment and progress.
type TaskController struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

// NewTaskController creates a new TaskController.
func NewTaskController(db *gorm.DB, activity *services.ActivityService) *TaskController {
	return &TaskController{DB: db, Activity: activity}
}

// TaskBody is the create/update payload for a task.
type TaskBody struct {
	MemberID    uint       `json:"member_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
}

// taskRow is the listing projection with the assignee's name joined.
type taskRow struct {
	models.Task
	MemberName string `json:"memberName"`
}

// ListByCompany returns all tasks plus the completed and pending sublists
// the admin board renders.
func (tc *TaskController) ListByCompany(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	fetch := func(extra string, args ...interface{}) ([]taskRow, error) {
		rows := make([]taskRow, 0)
		q := tc.DB.Model(&models.Task{}).
			Select("tasks.*, users.first_name || ' ' || users.last_name AS member_name").
			Joins("LEFT JOIN users ON users.id = tasks.member_id").
			Where("tasks.company_code = ?", companyCode)
		if extra != "" {
			q = q.Where(extra, args...)
		}
		err := q.Order("tasks.date_posted DESC").Scan(&rows).Error
		return rows, err
	}

	all, err := fetch("")
	if err != nil {
		return failJSON(c, err)
	}
	completed, err := fetch("tasks.status = ?", models.TaskStatusCompleted)
	if err != nil {
		return failJSON(c, err)
	}
	pending, err := fetch("tasks.status != ?", models.TaskStatusCompleted)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"data":          all,
		"dataCompleted": completed,
		"dataPending":   pending,
	})
}

// ListByMember returns a member's tasks, newest first.
func (tc *TaskController) ListByMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("memberId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	tasks := make([]models.Task, 0)
	err = tc.DB.Where("company_code = ? AND member_id = ?", companyCode, memberID).
		Order("date_posted DESC").Find(&tasks).Error
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": tasks})
}

// GetTask returns one task.
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	taskID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid task ID"})
	}

	var task models.Task
	if err := tc.DB.Preload("Member").Where("id = ? AND company_code = ?", taskID, companyCode).First(&task).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Task not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": task})
}

// CreateTask assigns a new task to a member.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	var req TaskBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Task title is required"})
	}

	var member models.User
	if err := tc.DB.Where("id = ? AND company_code = ?", req.MemberID, companyCode).First(&member).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Member not found"})
	}

	task := models.Task{
		CompanyCode: companyCode,
		MemberID:    req.MemberID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		return failJSON(c, err)
	}

	tc.Activity.Record(models.ActivityLog{
		Activity:    "New Task: " + task.Title,
		CompanyCode: companyCode,
		StatusType:  task.Status,
		MemberID:    &task.MemberID,
		LogType:     models.LogTypeTask,
	})

	return c.Status(201).JSON(fiber.Map{"success": true, "data": task})
}

// UpdateTask updates a task's fields and status.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	taskID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid task ID"})
	}

	var task models.Task
	if err := tc.DB.Where("id = ? AND company_code = ?", taskID, companyCode).First(&task).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Task not found"})
	}

	var req TaskBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Status != "" && !models.ValidTaskStatus(req.Status) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown task status"})
	}

	if req.Title != "" {
		task.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		return failJSON(c, err)
	}

	tc.Activity.Record(models.ActivityLog{
		Activity:    "Update Task: " + task.Title,
		CompanyCode: companyCode,
		StatusType:  task.Status,
		MemberID:    &task.MemberID,
		LogType:     models.LogTypeTask,
	})

	return c.JSON(fiber.Map{"success": true, "data": task})
}

// ReviewBody is the reviewer's verdict on a submitted deliverable.
type ReviewBody struct {
	Review string `json:"review"`
	Status string `json:"status"`
}

// ReviewTask records the reviewer's verdict and moves the task to its final
// status.
func (tc *TaskController) ReviewTask(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	taskID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid task ID"})
	}

	var task models.Task
	if err := tc.DB.Where("id = ? AND company_code = ?", taskID, companyCode).First(&task).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Task not found"})
	}

	var req ReviewBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if !models.ValidTaskStatus(req.Status) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown task status"})
	}

	task.Review = req.Review
	task.Status = req.Status
	if err := tc.DB.Save(&task).Error; err != nil {
		return failJSON(c, err)
	}

	tc.Activity.Record(models.ActivityLog{
		Activity:    "Task Reviewed: " + task.Title,
		CompanyCode: companyCode,
		StatusType:  task.Status,
		MemberID:    &task.MemberID,
		LogType:     models.LogTypeTask,
	})

	return c.JSON(fiber.Map{"success": true, "message": "Task reviewed successfully", "data": task})
}

// DeleteTask removes a task.
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	taskID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid task ID"})
	}

	result := tc.DB.Where("id = ? AND company_code = ?", taskID, companyCode).Delete(&models.Task{})
	if result.Error != nil {
		return failJSON(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Task not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Task deleted successfully"})
}
