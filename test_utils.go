package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/routes"
	"orghub-backend/services"
	"orghub-backend/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
)

// setupTestDB creates an in-memory test database with the full schema.
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to test database")
	}

	// Every pooled connection would get its own empty in-memory database, so
	// pin the pool to one connection.
	sqlDB, err := db.DB()
	if err != nil {
		panic("Failed to access test database pool")
	}
	sqlDB.SetMaxOpenConns(1)

	db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.InventoryItem{},
		&models.ItemRequest{},
		&models.Task{},
		&models.UserPerformance{},
		&models.Attendance{},
		&models.Document{},
		&models.Feedback{},
		&models.Announcement{},
		&models.ActivityLog{},
	)
	return db
}

// createTestOrg creates an organization with one founder and one member and
// returns both accounts.
func createTestOrg(db *gorm.DB, companyCode string) (models.User, models.User) {
	hash, _ := utils.HashPassword("password123")

	org := models.Organization{
		Name:        "Test Org " + companyCode,
		CompanyCode: companyCode,
	}
	db.Create(&org)

	founder := models.User{
		FirstName:    "Fiona",
		LastName:     "Founder",
		Email:        strings.ToLower("founder@" + companyCode + ".test"),
		PasswordHash: hash,
		Role:         models.RoleFounder,
		Status:       models.UserStatusActive,
		HiredDate:    time.Now().AddDate(-1, 0, 0),
		CompanyCode:  companyCode,
	}
	member := models.User{
		FirstName:    "Milo",
		LastName:     "Member",
		Email:        strings.ToLower("member@" + companyCode + ".test"),
		PasswordHash: hash,
		Role:         models.RoleMember,
		Status:       models.UserStatusActive,
		HiredDate:    time.Now().AddDate(-1, 0, 0),
		CompanyCode:  companyCode,
	}
	db.Create(&founder)
	db.Create(&member)

	return founder, member
}

// generateTestJWT issues a token for the given account.
func generateTestJWT(user models.User) string {
	token, _ := utils.GenerateJWT(user.ID, user.Email, user.Role, user.CompanyCode)
	return token
}

// createTestApp builds the full application against the given database and
// returns the app plus the activity service so tests can flush the
// asynchronous audit writes.
func createTestApp(db *gorm.DB) (*fiber.App, *services.ActivityService) {
	app := fiber.New()

	activityService := services.NewActivityService(db)
	inventoryService := services.NewInventoryService(db)
	requestService := services.NewRequestService(db, inventoryService, activityService)
	attendanceService := services.NewAttendanceService(db, activityService)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db, activityService))
	routes.SetupInventoryRoutes(app, controllers.NewInventoryController(inventoryService, activityService))
	routes.SetupItemRequestRoutes(app, controllers.NewItemRequestController(requestService))
	routes.SetupUserRoutes(app, controllers.NewUserController(db, activityService))
	routes.SetupTaskRoutes(app, controllers.NewTaskController(db, activityService))
	routes.SetupPerformanceRoutes(app, controllers.NewPerformanceController(db, activityService))
	routes.SetupAttendanceRoutes(app, controllers.NewAttendanceController(attendanceService))
	routes.SetupDocumentRoutes(app, controllers.NewDocumentController(db, activityService))
	routes.SetupFeedbackRoutes(app, controllers.NewFeedbackController(db, activityService))
	routes.SetupAnnouncementRoutes(app, controllers.NewAnnouncementController(db, activityService))
	routes.SetupLogRoutes(app, controllers.NewLogController(db))

	return app, activityService
}

// jsonRequest builds an authenticated JSON request.
func jsonRequest(method, target, token string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// decodeBody unmarshals a response body into a generic map.
func decodeBody(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	var body map[string]interface{}
	json.Unmarshal(data, &body)
	return body
}
