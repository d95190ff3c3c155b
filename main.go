package main

import (
	"fuelcosmos-api/config"
	"fuelcosmos-api/database"
	"fuelcosmos-api/jobs"
	"fuelcosmos-api/middleware"
	"fuelcosmos-api/routes"
	"fuelcosmos-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env if present, then configuration
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment")
	}
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed database with demo data (optional - for development)
	if err := database.SeedData(db); err != nil {
		logrus.Warnf("Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimit(120, 30))
	router.Use(middleware.ValidateJSON())

	emailService := services.NewEmailService(cfg)

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Background budget alerting
	budgetAlertJob := jobs.NewBudgetAlertJob(db, emailService, cfg.BudgetAlertInterval)
	budgetAlertJob.Start()
	defer budgetAlertJob.Stop()

	logrus.Infof("Starting FuelCosmos API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
