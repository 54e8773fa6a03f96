package controllers

import (
	"strconv"

	"orghub-backend/services"

	"github.com/gofiber/fiber/v2"
)

// AttendanceController exposes clock-in/out and the attendance history.
type AttendanceController struct {
	Attendance *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController.
func NewAttendanceController(attendance *services.AttendanceService) *AttendanceController {
	return &AttendanceController{Attendance: attendance}
}

// ClockIn records today's clock-in for the authenticated member.
func (ac *AttendanceController) ClockIn(c *fiber.Ctx) error {
	userID, _, companyCode := principal(c)

	record, err := ac.Attendance.ClockIn(companyCode, userID)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Clock-in recorded successfully.",
		"data":    record,
	})
}

// ClockOut records today's clock-out.
func (ac *AttendanceController) ClockOut(c *fiber.Ctx) error {
	userID, _, companyCode := principal(c)

	record, err := ac.Attendance.ClockOut(companyCode, userID)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Clock-out recorded successfully.",
		"data":    record,
	})
}

// ListByCompany returns the organization's attendance history.
func (ac *AttendanceController) ListByCompany(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	records, err := ac.Attendance.ListByCompany(companyCode)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": records})
}

// Autofill backfills Absent rows for a member's missed workdays.
func (ac *AttendanceController) Autofill(c *fiber.Ctx) error {
	_, _, companyCode := principal(c)

	memberID, err := strconv.ParseUint(c.Params("memberId"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "memberId is required"})
	}

	filled, err := ac.Attendance.AutofillAbsences(companyCode, uint(memberID))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Absent logs auto-filled (if needed).",
		"filled":  filled,
	})
}
