package controllers

import (
	"net/http"
	"time"

	"fuelcosmos-api/models"
	"fuelcosmos-api/repositories"
	"fuelcosmos-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatsController struct {
	db    *gorm.DB
	repo  *repositories.FillUpRepository
	stats *services.StatsService
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{
		db:    db,
		repo:  repositories.NewFillUpRepository(db),
		stats: services.NewStatsService(),
	}
}

// GetVehicleStats returns the aggregate statistics for one vehicle,
// optionally narrowed to a tank profile via ?tank_id=.
func (sc *StatsController) GetVehicleStats(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := sc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	var tankID *string
	if t := c.Query("tank_id"); t != "" {
		tankID = &t
	}

	entries, err := sc.repo.ListByVehicle(userID, vehicleID, tankID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fill-up entries"})
		return
	}

	c.JSON(http.StatusOK, sc.stats.ComputeAggregateStats(entries))
}

type vehicleWithStats struct {
	Vehicle models.Vehicle      `json:"vehicle"`
	Stats   models.VehicleStats `json:"stats"`
}

// GetFleetStats returns per-vehicle aggregates plus the fleet health
// score across all of the user's vehicles.
func (sc *StatsController) GetFleetStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var vehicles []models.Vehicle
	if err := sc.db.Where("user_id = ?", userID).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	allEntries, err := sc.repo.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fill-up entries"})
		return
	}

	byVehicle := make(map[string][]models.FillUpEntry)
	for _, entry := range allEntries {
		byVehicle[entry.VehicleID] = append(byVehicle[entry.VehicleID], entry)
	}

	perVehicle := make([]vehicleWithStats, 0, len(vehicles))
	expectedMpgValues := make([]float64, 0, len(vehicles))
	for _, vehicle := range vehicles {
		perVehicle = append(perVehicle, vehicleWithStats{
			Vehicle: vehicle,
			Stats:   sc.stats.ComputeAggregateStats(byVehicle[vehicle.ID]),
		})
		if vehicle.ExpectedMpg != nil {
			expectedMpgValues = append(expectedMpgValues, *vehicle.ExpectedMpg)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": perVehicle,
		"fleet":    sc.stats.ComputeFleetHealth(allEntries, expectedMpgValues),
	})
}

// GetBudgetUsage reports this month's spending against the configured
// monthly budget.
func (sc *StatsController) GetBudgetUsage(c *gin.Context) {
	userID := c.GetString("user_id")

	var budget models.Budget
	if err := sc.db.First(&budget, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No budget configured"})
		return
	}

	entries, err := sc.repo.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fill-up entries"})
		return
	}

	c.JSON(http.StatusOK, sc.stats.ComputeBudgetUsage(entries, &budget, time.Now()))
}
