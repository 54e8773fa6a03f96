package controllers

import (
	"strconv"
	"time"

	"orghub-backend/models"
	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PerformanceController records reviewer ratings for completed tasks and
// serves the per-member performance aggregations.
type PerformanceController struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

// NewPerformanceController creates a new PerformanceController.
func NewPerformanceController(db *gorm.DB, activity *services.ActivityService) *PerformanceController {
	return &PerformanceController{DB: db, Activity: activity}
}

// PerformanceBody is the rating payload.
type PerformanceBody struct {
	MemberID uint   `json:"member_id"`
	TaskID   uint   `json:"task_id"`
	Rating   int    `json:"rating"`
	Remarks  string `json:"remarks"`
}

// performanceRow is the listing projection with the member's name joined.
type performanceRow struct {
	ID          uint      `json:"id"`
	CompanyCode string    `json:"company_code"`
	MemberID    uint      `json:"member_id"`
	TaskID      uint      `json:"task_id"`
	Rating      int       `json:"rating"`
	Remarks     string    `json:"remarks"`
	CreatedAt   time.Time `json:"created_at"`
	MemberName  string    `json:"memberName"`
}

// Create records a rating for a task and marks the task Completed, both in
// one transaction.
func (pc *PerformanceController) Create(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	var req PerformanceBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Rating must be between 1 and 5"})
	}

	var task models.Task
	err := pc.DB.Where("id = ? AND company_code = ? AND member_id = ?", req.TaskID, companyCode, req.MemberID).
		First(&task).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Task not found for this member"})
	}

	performance := models.UserPerformance{
		CompanyCode: companyCode,
		MemberID:    req.MemberID,
		TaskID:      req.TaskID,
		Rating:      req.Rating,
		Remarks:     req.Remarks,
	}
	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&performance).Error; err != nil {
			return err
		}
		task.Status = models.TaskStatusCompleted
		return tx.Save(&task).Error
	})
	if err != nil {
		return failJSON(c, err)
	}

	pc.Activity.Record(models.ActivityLog{
		Activity:    "Task Rated: " + task.Title,
		CompanyCode: companyCode,
		StatusType:  task.Status,
		MemberID:    &task.MemberID,
		LogType:     models.LogTypeTask,
	})

	return c.Status(201).JSON(fiber.Map{"success": true, "data": performance})
}

// ListByMember returns a member's performance records plus the output rate
// the profile screen renders: task totals and the average rating.
func (pc *PerformanceController) ListByMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	rows, err := pc.query(pc.DB.Where("user_performances.company_code = ? AND user_performances.member_id = ?", companyCode, memberID))
	if err != nil {
		return failJSON(c, err)
	}

	var totalTasks, completedTasks int64
	pc.DB.Model(&models.Task{}).Where("company_code = ? AND member_id = ?", companyCode, memberID).Count(&totalTasks)
	pc.DB.Model(&models.Task{}).Where("company_code = ? AND member_id = ? AND status = ?", companyCode, memberID, models.TaskStatusCompleted).Count(&completedTasks)

	var averageRating *float64
	if len(rows) > 0 {
		sum := 0
		for _, row := range rows {
			sum += row.Rating
		}
		avg := float64(sum) / float64(len(rows))
		averageRating = &avg
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
		"outputRate": fiber.Map{
			"totalTasks":     totalTasks,
			"completedTasks": completedTasks,
			"averageRating":  averageRating,
		},
	})
}

// ListByTask returns the ratings recorded for one task.
func (pc *PerformanceController) ListByTask(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	taskID, err := strconv.ParseUint(c.Params("taskId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid task ID"})
	}

	rows, err := pc.query(pc.DB.Where("user_performances.company_code = ? AND user_performances.task_id = ?", companyCode, taskID))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (pc *PerformanceController) query(q *gorm.DB) ([]performanceRow, error) {
	rows := make([]performanceRow, 0)
	err := q.Model(&models.UserPerformance{}).
		Select("user_performances.id, user_performances.company_code, user_performances.member_id, user_performances.task_id, user_performances.rating, user_performances.remarks, user_performances.created_at, users.first_name || ' ' || users.last_name AS member_name").
		Joins("LEFT JOIN users ON users.id = user_performances.member_id").
		Order("user_performances.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
