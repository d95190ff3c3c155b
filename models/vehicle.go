package models

import (
	"time"
)

type Vehicle struct {
	ID       string   `json:"id" gorm:"primaryKey;size:191"`
	UserID   string   `json:"userId" gorm:"not null;size:191;index"`
	Name     string   `json:"name" gorm:"not null;size:100"`
	Make     string   `json:"make" gorm:"size:100"`
	Model    string   `json:"model" gorm:"size:100"`
	Year     string   `json:"year" gorm:"size:4"`
	FuelType FuelType `json:"fuelType" gorm:"size:20;default:'GASOLINE'"`
	// Manufacturer-rated fuel economy, used by the fleet health score to
	// compare actual vs. expected efficiency.
	ExpectedMpg *float64 `json:"expectedMpg"`
	ImageURL    string   `json:"imageUrl" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User         User          `json:"-" gorm:"foreignKey:UserID"`
	TankProfiles []TankProfile `json:"tankProfiles,omitempty" gorm:"foreignKey:VehicleID"`
	FillUps      []FillUpEntry `json:"-" gorm:"foreignKey:VehicleID"`
}

// TankProfile is an optional sub-scope of a vehicle (e.g. a bike with a
// main and a reserve fuel system). Entries referencing a tank profile are
// sequenced against that tank only; entries without one form their own
// "no tank" scope.
type TankProfile struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	VehicleID string    `json:"vehicleId" gorm:"not null;size:191;index"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	CapacityL float64   `json:"capacityL"`
	CreatedAt time.Time `json:"createdAt"`

	Vehicle Vehicle `json:"-" gorm:"foreignKey:VehicleID"`
}
