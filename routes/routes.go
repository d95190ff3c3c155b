package routes

import (
	"net/http"

	"fuelcosmos-api/config"
	"fuelcosmos-api/controllers"
	"fuelcosmos-api/middleware"
	"fuelcosmos-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCORS returns a permissive CORS middleware for the API
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	extractionService := services.NewReceiptExtractionService(cfg)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	vehicleController := controllers.NewVehicleController(db)
	fillUpController := controllers.NewFillUpController(db, extractionService)
	statsController := controllers.NewStatsController(db)
	budgetController := controllers.NewBudgetController(db)
	exportController := controllers.NewExportController(db)
	notificationController := controllers.NewNotificationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/send-verification", authController.SendVerification)
		auth.POST("/verify-code", authController.VerifyCode)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
		}

		// Vehicle routes
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("/", vehicleController.GetVehicles)
			vehicles.POST("/", vehicleController.CreateVehicle)
			vehicles.GET("/:id", vehicleController.GetVehicle)
			vehicles.PUT("/:id", vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleController.DeleteVehicle)
			vehicles.GET("/:id/tanks", vehicleController.GetTankProfiles)
			vehicles.POST("/:id/tanks", vehicleController.CreateTankProfile)
			vehicles.DELETE("/:id/tanks/:tankId", vehicleController.DeleteTankProfile)
			vehicles.GET("/:id/stats", statsController.GetVehicleStats)
		}

		// Fill-up routes
		fillups := protected.Group("/fillups")
		{
			fillups.GET("/", fillUpController.GetFillUps)
			fillups.POST("/", fillUpController.CreateFillUp)
			fillups.GET("/:id", fillUpController.GetFillUp)
			fillups.DELETE("/:id", fillUpController.DeleteFillUp)
			fillups.POST("/extract-receipt", fillUpController.ExtractReceipt)
		}

		// Statistics routes
		stats := protected.Group("/stats")
		{
			stats.GET("/fleet", statsController.GetFleetStats)
			stats.GET("/budget", statsController.GetBudgetUsage)
		}

		// Budget routes
		budget := protected.Group("/budget")
		{
			budget.GET("/", budgetController.GetBudget)
			budget.PUT("/", budgetController.UpdateBudget)
		}

		// Export routes
		export := protected.Group("/export")
		{
			export.GET("/fillups", exportController.ExportFillUps)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
		}
	}
}
