package controllers

import (
	"database/sql"
	"strconv"
	"strings"

	"orghub-backend/models"
	"orghub-backend/services"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController manages member accounts and the member/company detail
// aggregations.
type UserController struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

// NewUserController creates a new UserController.
func NewUserController(db *gorm.DB, activity *services.ActivityService) *UserController {
	return &UserController{DB: db, Activity: activity}
}

// CreateMemberRequest is the member creation payload.
type CreateMemberRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateMemberRequest is the member update payload.
type UpdateMemberRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// ListMembers returns all members of the caller's organization.
func (uc *UserController) ListMembers(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	var members []models.User
	if err := uc.DB.Where("company_code = ?", companyCode).Order("id ASC").Find(&members).Error; err != nil {
		return failJSON(c, err)
	}

	if len(members) == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No members found for this company"})
	}

	return c.JSON(fiber.Map{"success": true, "data": members, "count": len(members)})
}

// GetMember returns one member with the attendance and task aggregations
// the profile screen renders.
func (uc *UserController) GetMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	var member models.User
	if err := uc.DB.Where("id = ? AND company_code = ?", memberID, companyCode).First(&member).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Member not found"})
	}

	var organization models.Organization
	uc.DB.Where("company_code = ?", companyCode).First(&organization)

	countAttendance := func(status string) int64 {
		var n int64
		uc.DB.Model(&models.Attendance{}).Where("member_id = ? AND status = ?", memberID, status).Count(&n)
		return n
	}
	present := countAttendance(models.AttendanceStatusPresent)
	late := countAttendance(models.AttendanceStatusLate)
	absent := countAttendance(models.AttendanceStatusAbsent)

	attendanceRate := 0.0
	if total := present + late + absent; total > 0 {
		attendanceRate = float64(present+late) * 100.0 / float64(total)
	}

	var taskCompleted, taskTotal int64
	uc.DB.Model(&models.Task{}).Where("member_id = ? AND status = ?", memberID, models.TaskStatusCompleted).Count(&taskCompleted)
	uc.DB.Model(&models.Task{}).Where("member_id = ?", memberID).Count(&taskTotal)

	taskRate := 0.0
	if taskTotal > 0 {
		taskRate = float64(taskCompleted) * 100.0 / float64(taskTotal)
	}

	history := make([]models.Attendance, 0)
	uc.DB.Where("member_id = ?", memberID).Order("date DESC").Find(&history)

	var feedbackCount int64
	uc.DB.Model(&models.Feedback{}).Where("feedback_by = ?", memberID).Count(&feedbackCount)

	var avgRating sql.NullFloat64
	uc.DB.Model(&models.UserPerformance{}).Where("member_id = ?", memberID).
		Select("AVG(CAST(rating AS REAL))").Scan(&avgRating)
	var averageRating interface{}
	if avgRating.Valid {
		averageRating = avgRating.Float64
	}

	return c.JSON(fiber.Map{
		"success":                true,
		"data":                   member,
		"averageRating":          averageRating,
		"attendanceCountPresent": present,
		"attendanceCountLate":    late,
		"attendanceCountAbsence": absent,
		"attendanceRate":         attendanceRate,
		"taskCompleted":          taskCompleted,
		"taskUnfinished":         taskTotal - taskCompleted,
		"taskrate":               taskRate,
		"attendancehistory":      history,
		"companyResult":          organization,
		"feedback":               feedbackCount,
	})
}

// CreateMember adds a member account to the caller's organization.
func (uc *UserController) CreateMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if !emailPattern.MatchString(req.Email) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "A valid email is required"})
	}
	if len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Password must be at least 6 characters"})
	}

	var existing models.User
	if err := uc.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Email already exists"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return failJSON(c, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	status := req.Status
	if status == "" {
		status = models.UserStatusActive
	}

	member := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hashedPassword,
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
		Status:       status,
		Address:      req.Address,
		Notes:        req.Notes,
		CompanyCode:  companyCode,
	}
	if err := uc.DB.Create(&member).Error; err != nil {
		return failJSON(c, err)
	}

	uc.Activity.Record(models.ActivityLog{
		Activity:    "Welcome New Member: " + member.FullName(),
		CompanyCode: companyCode,
		StatusType:  member.Role,
		LogType:     models.LogTypeUser,
	})

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Member created successfully",
		"data": fiber.Map{
			"id":         member.ID,
			"first_name": member.FirstName,
			"last_name":  member.LastName,
			"email":      member.Email,
		},
	})
}

// UpdateMember overwrites a member's profile fields.
func (uc *UserController) UpdateMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	var member models.User
	if err := uc.DB.Where("id = ? AND company_code = ?", memberID, companyCode).First(&member).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Member not found"})
	}

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if !emailPattern.MatchString(req.Email) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "A valid email is required"})
	}

	var duplicate models.User
	if err := uc.DB.Where("email = ? AND id != ?", strings.ToLower(req.Email), memberID).First(&duplicate).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Email already exists"})
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Email = strings.ToLower(req.Email)
	member.PhoneNumber = req.PhoneNumber
	member.Role = req.Role
	member.Status = req.Status
	member.Address = req.Address
	member.Notes = req.Notes

	if err := uc.DB.Save(&member).Error; err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Member updated successfully"})
}

// UpdatePassword replaces a member's password.
func (uc *UserController) UpdatePassword(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	var member models.User
	if err := uc.DB.Where("id = ? AND company_code = ?", memberID, companyCode).First(&member).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Member not found"})
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Password must be at least 6 characters"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return failJSON(c, err)
	}

	member.PasswordHash = hashedPassword
	if err := uc.DB.Save(&member).Error; err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password updated successfully"})
}

// DeleteMember removes a member account.
func (uc *UserController) DeleteMember(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid member ID"})
	}

	result := uc.DB.Where("id = ? AND company_code = ?", memberID, companyCode).Delete(&models.User{})
	if result.Error != nil {
		return failJSON(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Member not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Member deleted successfully"})
}

// CheckCompanyCode reports whether a company code exists. Public: used by
// the member signup flow before authentication.
func (uc *UserController) CheckCompanyCode(c *fiber.Ctx) error {
	code := c.Params("code")

	var count int64
	if err := uc.DB.Model(&models.Organization{}).Where("company_code = ?", code).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"exists": false, "error": "Database error"})
	}

	return c.JSON(fiber.Map{"exists": count > 0})
}

// CompanyCounts returns the dashboard tile counts for the organization.
func (uc *UserController) CompanyCounts(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	count := func(model interface{}, query string, args ...interface{}) int64 {
		var n int64
		q := uc.DB.Model(model).Where("company_code = ?", companyCode)
		if query != "" {
			q = q.Where(query, args...)
		}
		q.Count(&n)
		return n
	}

	var presentish, totalAttendance int64
	uc.DB.Model(&models.Attendance{}).Where("company_code = ? AND status = ?", companyCode, models.AttendanceStatusPresent).Count(&presentish)
	uc.DB.Model(&models.Attendance{}).Where("company_code = ?", companyCode).Count(&totalAttendance)

	attendanceRate := 0.0
	if totalAttendance > 0 {
		attendanceRate = float64(presentish) * 100.0 / float64(totalAttendance)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"countMember":       count(&models.User{}, ""),
		"countDocument":     count(&models.Document{}, ""),
		"countAnnouncement": count(&models.Announcement{}, ""),
		"countTask":         count(&models.Task{}, "status = ?", models.TaskStatusCompleted),
		"countInventory":    count(&models.InventoryItem{}, ""),
		"countAttendance":   attendanceRate,
	})
}
