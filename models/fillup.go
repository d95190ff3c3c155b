package models

import (
	"time"
)

type FuelType string

const (
	FuelTypeGasoline FuelType = "GASOLINE"
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeElectric FuelType = "ELECTRIC"
	FuelTypePremium  FuelType = "PREMIUM"
	FuelTypeE85      FuelType = "E85"
)

type FillLevel string

const (
	FillLevelFull    FillLevel = "FULL"
	FillLevelPartial FillLevel = "PARTIAL"
)

type SourceType string

const (
	SourceTypeManual  SourceType = "MANUAL"
	SourceTypePhotoAI SourceType = "PHOTO_AI"
	SourceTypeAPI     SourceType = "API"
)

// FillUpEntry is one recorded fuel purchase for a vehicle. The derived
// fields are computed once when the entry is created and stored as-is;
// they are never recomputed when later entries are inserted out of
// odometer order.
type FillUpEntry struct {
	ID            string      `json:"id" gorm:"primaryKey;size:191"`
	UserID        string      `json:"userId" gorm:"not null;size:191;index:idx_fillups_scope,priority:1"`
	VehicleID     string      `json:"vehicleId" gorm:"not null;size:191;index:idx_fillups_scope,priority:2"`
	TankProfileID *string     `json:"tankProfileId" gorm:"size:191;index:idx_fillups_scope,priority:3"`
	EntryDate     time.Time   `json:"entryDate" gorm:"not null;index"`
	OdometerKm    float64     `json:"odometerKm" gorm:"not null"`
	FuelVolumeL   float64     `json:"fuelVolumeL" gorm:"not null"`
	TotalCost     float64     `json:"totalCost" gorm:"not null"`
	Currency      string      `json:"currency" gorm:"size:3;default:'EUR'"`
	FuelType      FuelType    `json:"fuelType" gorm:"size:20;default:'GASOLINE'"`
	FillLevel     FillLevel   `json:"fillLevel" gorm:"size:10;default:'FULL'"`
	SourceType    SourceType  `json:"sourceType" gorm:"size:10;default:'MANUAL'"`
	AIConfidence  *float64    `json:"aiConfidence,omitempty"`
	PhotoURLs     StringSlice `json:"photoUrls" gorm:"type:json"`

	// Derived fields. All four distance/economy/cost fields are null when
	// no qualifying predecessor exists; economy fields additionally stay
	// null for PARTIAL fills.
	PricePerLiter       float64  `json:"pricePerLiter"`
	DistanceSinceLastKm *float64 `json:"distanceSinceLastKm"`
	EconomyLPer100Km    *float64 `json:"economyLPer100Km"`
	EconomyMpg          *float64 `json:"economyMpg"`
	CostPerKm           *float64 `json:"costPerKm"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User        User         `json:"-" gorm:"foreignKey:UserID"`
	Vehicle     Vehicle      `json:"-" gorm:"foreignKey:VehicleID"`
	TankProfile *TankProfile `json:"-" gorm:"foreignKey:TankProfileID"`
}

func (ft FuelType) IsValid() bool {
	switch ft {
	case FuelTypeGasoline, FuelTypeDiesel, FuelTypeElectric, FuelTypePremium, FuelTypeE85:
		return true
	}
	return false
}

func (fl FillLevel) IsValid() bool {
	return fl == FillLevelFull || fl == FillLevelPartial
}

func (st SourceType) IsValid() bool {
	return st == SourceTypeManual || st == SourceTypePhotoAI || st == SourceTypeAPI
}
