package models

import (
	"time"
)

// Budget is a per-user monthly fuel spending budget. One budget per user.
type Budget struct {
	ID                    string    `json:"id" gorm:"primaryKey;size:191"`
	UserID                string    `json:"userId" gorm:"uniqueIndex;not null;size:191"`
	MonthlyAmount         float64   `json:"monthlyAmount" gorm:"not null"`
	Currency              string    `json:"currency" gorm:"size:3;default:'EUR'"`
	AlertThresholdPercent float64   `json:"alertThresholdPercent" gorm:"default:90"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BudgetUsage is computed on demand and never persisted. PercentUsed is
// unbounded above; clamping for display is a UI concern.
type BudgetUsage struct {
	Month          string  `json:"month"`
	MonthlyAmount  float64 `json:"monthlyAmount"`
	SpentThisMonth float64 `json:"spentThisMonth"`
	PercentUsed    float64 `json:"percentUsed"`
}
