package controllers

import (
	"net/http"

	"fuelcosmos-api/models"
	"fuelcosmos-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleController struct {
	db *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{db: db}
}

type CreateVehicleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Year        string   `json:"year"`
	FuelType    string   `json:"fuelType"`
	ExpectedMpg *float64 `json:"expectedMpg"`
	ImageURL    string   `json:"imageUrl"`
}

func (vc *VehicleController) GetVehicles(c *gin.Context) {
	userID := c.GetString("user_id")

	var vehicles []models.Vehicle
	if err := vc.db.Preload("TankProfiles").Where("user_id = ?", userID).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (vc *VehicleController) GetVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.Preload("TankProfiles").First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fuelType := models.FuelType(req.FuelType)
	if req.FuelType == "" {
		fuelType = models.FuelTypeGasoline
	} else if !fuelType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fuel type"})
		return
	}

	if req.ExpectedMpg != nil && (!utils.IsFinite(*req.ExpectedMpg) || *req.ExpectedMpg <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected MPG must be a positive number"})
		return
	}

	vehicle := models.Vehicle{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		FuelType:    fuelType,
		ExpectedMpg: req.ExpectedMpg,
		ImageURL:    req.ImageURL,
	}

	if err := vc.db.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fuelType := models.FuelType(req.FuelType)
	if req.FuelType != "" && !fuelType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fuel type"})
		return
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"make":         req.Make,
		"model":        req.Model,
		"year":         req.Year,
		"expected_mpg": req.ExpectedMpg,
		"image_url":    req.ImageURL,
	}
	if req.FuelType != "" {
		updates["fuel_type"] = fuelType
	}

	if err := vc.db.Model(&vehicle).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated successfully"})
}

func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	// Remove the vehicle together with its fill-ups and tank profiles
	err := vc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", vehicleID).Delete(&models.FillUpEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", vehicleID).Delete(&models.TankProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&vehicle).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

type CreateTankProfileRequest struct {
	Name      string  `json:"name" binding:"required"`
	CapacityL float64 `json:"capacityL"`
}

func (vc *VehicleController) GetTankProfiles(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	var tanks []models.TankProfile
	if err := vc.db.Where("vehicle_id = ?", vehicleID).Find(&tanks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tank profiles"})
		return
	}

	c.JSON(http.StatusOK, tanks)
}

func (vc *VehicleController) CreateTankProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	var req CreateTankProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CapacityL < 0 || !utils.IsFinite(req.CapacityL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tank capacity must be a non-negative number"})
		return
	}

	tank := models.TankProfile{
		ID:        uuid.New().String(),
		VehicleID: vehicleID,
		Name:      req.Name,
		CapacityL: req.CapacityL,
	}

	if err := vc.db.Create(&tank).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tank profile"})
		return
	}

	c.JSON(http.StatusCreated, tank)
}

func (vc *VehicleController) DeleteTankProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("id")
	tankID := c.Param("tankId")

	var vehicle models.Vehicle
	if err := vc.db.First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	var tank models.TankProfile
	if err := vc.db.First(&tank, "id = ? AND vehicle_id = ?", tankID, vehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tank profile not found"})
		return
	}

	// Entries referencing this tank would lose their sequencing scope
	var entryCount int64
	vc.db.Model(&models.FillUpEntry{}).Where("tank_profile_id = ?", tankID).Count(&entryCount)
	if entryCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Tank profile has fill-up entries and cannot be deleted"})
		return
	}

	if err := vc.db.Delete(&tank).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tank profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tank profile deleted successfully"})
}
