package controllers

import (
	"errors"
	"net/http"

	"fuelcosmos-api/models"
	"fuelcosmos-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BudgetController struct {
	db *gorm.DB
}

func NewBudgetController(db *gorm.DB) *BudgetController {
	return &BudgetController{db: db}
}

type UpdateBudgetRequest struct {
	MonthlyAmount         float64  `json:"monthlyAmount" binding:"required,gt=0"`
	Currency              string   `json:"currency"`
	AlertThresholdPercent *float64 `json:"alertThresholdPercent"`
}

func (bc *BudgetController) GetBudget(c *gin.Context) {
	userID := c.GetString("user_id")

	var budget models.Budget
	if err := bc.db.First(&budget, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No budget configured"})
		return
	}

	c.JSON(http.StatusOK, budget)
}

// UpdateBudget creates or replaces the user's monthly budget.
func (bc *BudgetController) UpdateBudget(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsFinite(req.MonthlyAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Monthly amount must be a finite number"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	} else if !utils.IsValidCurrency(currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency must be a three-letter code"})
		return
	}

	threshold := 90.0
	if req.AlertThresholdPercent != nil {
		if !utils.IsFinite(*req.AlertThresholdPercent) || *req.AlertThresholdPercent <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Alert threshold must be a positive percentage"})
			return
		}
		threshold = *req.AlertThresholdPercent
	}

	var budget models.Budget
	err := bc.db.First(&budget, "user_id = ?", userID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budget"})
			return
		}
		budget = models.Budget{
			ID:                    uuid.New().String(),
			UserID:                userID,
			MonthlyAmount:         req.MonthlyAmount,
			Currency:              currency,
			AlertThresholdPercent: threshold,
		}
		if err := bc.db.Create(&budget).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
			return
		}
		c.JSON(http.StatusCreated, budget)
		return
	}

	updates := map[string]interface{}{
		"monthly_amount":          req.MonthlyAmount,
		"currency":                currency,
		"alert_threshold_percent": threshold,
	}
	if err := bc.db.Model(&budget).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	c.JSON(http.StatusOK, budget)
}
