package models

import (
	"time"
)

type User struct {
	ID              string    `json:"id" gorm:"primaryKey;size:191"`
	Name            string    `json:"name" gorm:"not null;size:255"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password        string    `json:"-" gorm:"not null;size:255"`
	EmailVerified   bool      `json:"email_verified" gorm:"default:false"`
	Avatar          *string   `json:"avatar" gorm:"size:500"`
	DefaultCurrency string    `json:"default_currency" gorm:"size:3;default:'EUR'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Vehicles []Vehicle     `json:"vehicles,omitempty" gorm:"foreignKey:UserID"`
	FillUps  []FillUpEntry `json:"-" gorm:"foreignKey:UserID"`
	Budget   *Budget       `json:"-" gorm:"foreignKey:UserID"`
}
