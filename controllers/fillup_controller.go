package controllers

import (
	"errors"
	"net/http"
	"time"

	"fuelcosmos-api/models"
	"fuelcosmos-api/repositories"
	"fuelcosmos-api/services"
	"fuelcosmos-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FillUpController struct {
	db        *gorm.DB
	repo      *repositories.FillUpRepository
	service   *services.FillUpService
	extractor *services.ReceiptExtractionService
}

func NewFillUpController(db *gorm.DB, extractor *services.ReceiptExtractionService) *FillUpController {
	repo := repositories.NewFillUpRepository(db)
	return &FillUpController{
		db:        db,
		repo:      repo,
		service:   services.NewFillUpService(repo),
		extractor: extractor,
	}
}

type CreateFillUpRequest struct {
	VehicleID     string     `json:"vehicleId" binding:"required"`
	TankProfileID *string    `json:"tankProfileId"`
	EntryDate     *time.Time `json:"entryDate"`

	// Metric fields (preferred)
	OdometerKm  *float64 `json:"odometerKm"`
	FuelVolumeL *float64 `json:"fuelVolumeL"`

	// Legacy unit-tagged fields
	Odometer     *float64 `json:"odometer"`
	OdometerUnit string   `json:"odometerUnit"`
	FuelVolume   *float64 `json:"fuelVolume"`
	FuelUnit     string   `json:"fuelUnit"`

	TotalCost    float64  `json:"totalCost" binding:"required"`
	Currency     string   `json:"currency"`
	FuelType     string   `json:"fuelType"`
	FillLevel    string   `json:"fillLevel"`
	SourceType   string   `json:"sourceType"`
	AIConfidence *float64 `json:"aiConfidence"`
	PhotoURLs    []string `json:"photoUrls"`
}

func (fc *FillUpController) CreateFillUp(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateFillUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := fc.db.First(&vehicle, "id = ? AND user_id = ?", req.VehicleID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or access denied"})
		return
	}

	if req.TankProfileID != nil {
		var tank models.TankProfile
		if err := fc.db.First(&tank, "id = ? AND vehicle_id = ?", *req.TankProfileID, req.VehicleID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tank profile not found for this vehicle"})
			return
		}
	}

	fillLevel := models.FillLevel(req.FillLevel)
	if req.FillLevel == "" {
		fillLevel = models.FillLevelFull
	} else if !fillLevel.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fill level must be FULL or PARTIAL"})
		return
	}

	fuelType := models.FuelType(req.FuelType)
	if req.FuelType == "" {
		fuelType = vehicle.FuelType
	} else if !fuelType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fuel type"})
		return
	}

	sourceType := models.SourceType(req.SourceType)
	if req.SourceType == "" {
		sourceType = models.SourceTypeManual
	} else if !sourceType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Source type must be MANUAL, PHOTO_AI or API"})
		return
	}

	if req.AIConfidence != nil {
		if sourceType != models.SourceTypePhotoAI {
			c.JSON(http.StatusBadRequest, gin.H{"error": "AI confidence is only valid for PHOTO_AI entries"})
			return
		}
		if !utils.IsValidConfidence(*req.AIConfidence) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "AI confidence must be between 0 and 100"})
			return
		}
	}

	currency := req.Currency
	if currency == "" {
		var user models.User
		if err := fc.db.First(&user, "id = ?", userID).Error; err == nil {
			currency = user.DefaultCurrency
		}
	}
	if currency == "" {
		currency = "EUR"
	} else if !utils.IsValidCurrency(currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency must be a three-letter code"})
		return
	}

	derived, err := fc.service.ComputeDerivedFields(userID, req.VehicleID, req.TankProfileID, services.FillUpInput{
		OdometerKm:   req.OdometerKm,
		FuelVolumeL:  req.FuelVolumeL,
		Odometer:     req.Odometer,
		OdometerUnit: utils.DistanceUnit(req.OdometerUnit),
		FuelVolume:   req.FuelVolume,
		FuelUnit:     utils.VolumeUnit(req.FuelUnit),
		TotalCost:    req.TotalCost,
		FillLevel:    fillLevel,
	})
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute derived fields"})
		return
	}

	entryDate := time.Now()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entry := models.FillUpEntry{
		ID:            uuid.New().String(),
		UserID:        userID,
		VehicleID:     req.VehicleID,
		TankProfileID: req.TankProfileID,
		EntryDate:     entryDate,
		OdometerKm:    derived.OdometerKm,
		FuelVolumeL:   derived.FuelVolumeL,
		TotalCost:     req.TotalCost,
		Currency:      currency,
		FuelType:      fuelType,
		FillLevel:     fillLevel,
		SourceType:    sourceType,
		AIConfidence:  req.AIConfidence,
		PhotoURLs:     models.StringSlice(req.PhotoURLs),

		PricePerLiter:       derived.PricePerLiter,
		DistanceSinceLastKm: derived.DistanceSinceLastKm,
		EconomyLPer100Km:    derived.EconomyLPer100Km,
		EconomyMpg:          derived.EconomyMpg,
		CostPerKm:           derived.CostPerKm,
	}

	if err := fc.repo.Create(&entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fill-up entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (fc *FillUpController) GetFillUps(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Query("vehicle_id")

	var tankID *string
	if t := c.Query("tank_id"); t != "" {
		tankID = &t
	}

	var entries []models.FillUpEntry
	var err error
	if vehicleID != "" {
		entries, err = fc.repo.ListByVehicle(userID, vehicleID, tankID)
	} else {
		entries, err = fc.repo.ListByUser(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fill-up entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (fc *FillUpController) GetFillUp(c *gin.Context) {
	userID := c.GetString("user_id")
	entryID := c.Param("id")

	entry, err := fc.repo.GetByID(userID, entryID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fill-up entry not found or access denied"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteFillUp removes an entry. Derived fields of later entries are
// intentionally not recomputed; they reflect the history at their own
// creation time.
func (fc *FillUpController) DeleteFillUp(c *gin.Context) {
	userID := c.GetString("user_id")
	entryID := c.Param("id")

	entry, err := fc.repo.GetByID(userID, entryID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fill-up entry not found or access denied"})
		return
	}

	if err := fc.repo.Delete(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fill-up entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fill-up entry deleted successfully"})
}

type ExtractReceiptRequest struct {
	PhotoURL string `json:"photoUrl" binding:"required"`
}

// ExtractReceipt forwards a receipt photo to the external extraction
// service and returns its best-effort structured data for client review.
func (fc *FillUpController) ExtractReceipt(c *gin.Context) {
	var req ExtractReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	extracted, err := fc.extractor.ExtractFromPhoto(c.Request.Context(), req.PhotoURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Receipt extraction failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"extracted":  extracted,
		"sourceType": models.SourceTypePhotoAI,
	})
}
