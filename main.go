package main

import (
	"os"

	"orghub-backend/controllers"
	"orghub-backend/models"
	"orghub-backend/routes"
	"orghub-backend/services"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	utils.InitLogger()
	defer zap.L().Sync()

	db, err := models.InitDB()
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		zap.L().Fatal("auto-migration failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	app.Use(logger.New())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Services
	activityService := services.NewActivityService(db)
	inventoryService := services.NewInventoryService(db)
	requestService := services.NewRequestService(db, inventoryService, activityService)
	attendanceService := services.NewAttendanceService(db, activityService)

	// Controllers
	authController := controllers.NewAuthController(db, activityService)
	inventoryController := controllers.NewInventoryController(inventoryService, activityService)
	requestController := controllers.NewItemRequestController(requestService)
	userController := controllers.NewUserController(db, activityService)
	taskController := controllers.NewTaskController(db, activityService)
	performanceController := controllers.NewPerformanceController(db, activityService)
	attendanceController := controllers.NewAttendanceController(attendanceService)
	documentController := controllers.NewDocumentController(db, activityService)
	feedbackController := controllers.NewFeedbackController(db, activityService)
	announcementController := controllers.NewAnnouncementController(db, activityService)
	logController := controllers.NewLogController(db)

	// Routes
	routes.SetupAuthRoutes(app, authController)
	routes.SetupInventoryRoutes(app, inventoryController)
	routes.SetupItemRequestRoutes(app, requestController)
	routes.SetupUserRoutes(app, userController)
	routes.SetupTaskRoutes(app, taskController)
	routes.SetupPerformanceRoutes(app, performanceController)
	routes.SetupAttendanceRoutes(app, attendanceController)
	routes.SetupDocumentRoutes(app, documentController)
	routes.SetupFeedbackRoutes(app, feedbackController)
	routes.SetupAnnouncementRoutes(app, announcementController)
	routes.SetupLogRoutes(app, logController)

	// Uploaded documents are served statically, as the source portal did.
	app.Static("/uploads", "uploads")

	// Live activity feed for connected dashboards.
	feedHub := services.NewFeedHub(activityService, utils.JWTSecret())
	go feedHub.Run()
	app.Get("/ws/activity", websocket.New(func(c *websocket.Conn) {
		feedHub.HandleWebSocket(c)
	}))

	// Nightly absent-attendance backfill.
	scheduler := cron.New()
	if err := attendanceService.RegisterAutofillJob(scheduler); err != nil {
		zap.L().Error("failed to register attendance autofill job", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "OrgHub backend is running",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zap.L().Info("server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
