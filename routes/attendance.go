package routes

import (
	"orghub-backend/controllers"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAttendanceRoutes wires clock-in/out and the attendance history.
func SetupAttendanceRoutes(app *fiber.App, attendanceController *controllers.AttendanceController) {
	attendance := app.Group("/api/Attendance", utils.AuthMiddleware)

	attendance.Post("/clockin", attendanceController.ClockIn)
	attendance.Post("/clockout", attendanceController.ClockOut)
	attendance.Get("/company/:CompanyCode", attendanceController.ListByCompany)
	attendance.Post("/autofill/:memberId", attendanceController.Autofill)
}
