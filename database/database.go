package database

import (
	"fmt"
	"time"

	"fuelcosmos-api/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.TankProfile{},
		&models.FillUpEntry{},
		&models.Budget{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// The predecessor lookup orders by odometer within a (user, vehicle,
	// tank) scope, so the descending odometer index matters most.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_fillups_scope_odometer ON fill_up_entries(user_id, vehicle_id, tank_profile_id, odometer_km DESC)").Error; err != nil {
		logrus.Warnf("Could not create index for fill_up_entries odometer: %v", err)
	}

	// Monthly budget sums filter by user and entry date.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_fillups_user_date ON fill_up_entries(user_id, entry_date)").Error; err != nil {
		logrus.Warnf("Could not create index for fill_up_entries entry_date: %v", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		logrus.Info("Database already has data, skipping seed")
		return nil
	}

	demoUser := models.User{
		ID:            "user-1",
		Name:          "John Doe",
		Email:         "john@example.com",
		Password:      "$2a$10$dummy", // This should be properly hashed in real scenarios
		EmailVerified: true,
	}
	if err := db.Create(&demoUser).Error; err != nil {
		logrus.Warnf("Could not create demo user: %v", err)
	}

	expectedMpg := 52.0
	demoVehicle := models.Vehicle{
		ID:          "vehicle-1",
		UserID:      demoUser.ID,
		Name:        "Daily commuter",
		Make:        "Honda",
		Model:       "CB500X",
		Year:        "2021",
		FuelType:    models.FuelTypeGasoline,
		ExpectedMpg: &expectedMpg,
	}
	if err := db.Create(&demoVehicle).Error; err != nil {
		logrus.Warnf("Could not create demo vehicle: %v", err)
	}

	dist := 310.0
	l100 := 17.5 / 310.0 * 100
	mpg := (310.0 / 1.609344) / (17.5 / 3.785411784)
	costPerKm := 29.75 / 310.0
	demoEntries := []models.FillUpEntry{
		{
			ID:            "fillup-1",
			UserID:        demoUser.ID,
			VehicleID:     demoVehicle.ID,
			EntryDate:     time.Now().AddDate(0, 0, -14),
			OdometerKm:    12000,
			FuelVolumeL:   16.2,
			TotalCost:     27.54,
			Currency:      "EUR",
			FuelType:      models.FuelTypeGasoline,
			FillLevel:     models.FillLevelFull,
			SourceType:    models.SourceTypeManual,
			PricePerLiter: 27.54 / 16.2,
		},
		{
			ID:                  "fillup-2",
			UserID:              demoUser.ID,
			VehicleID:           demoVehicle.ID,
			EntryDate:           time.Now().AddDate(0, 0, -3),
			OdometerKm:          12310,
			FuelVolumeL:         17.5,
			TotalCost:           29.75,
			Currency:            "EUR",
			FuelType:            models.FuelTypeGasoline,
			FillLevel:           models.FillLevelFull,
			SourceType:          models.SourceTypeManual,
			PricePerLiter:       29.75 / 17.5,
			DistanceSinceLastKm: &dist,
			EconomyLPer100Km:    &l100,
			EconomyMpg:          &mpg,
			CostPerKm:           &costPerKm,
		},
	}
	for _, entry := range demoEntries {
		if err := db.Create(&entry).Error; err != nil {
			logrus.Warnf("Could not create demo fill-up %s: %v", entry.ID, err)
		}
	}

	demoBudget := models.Budget{
		ID:                    "budget-1",
		UserID:                demoUser.ID,
		MonthlyAmount:         120,
		Currency:              "EUR",
		AlertThresholdPercent: 90,
	}
	if err := db.Create(&demoBudget).Error; err != nil {
		logrus.Warnf("Could not create demo budget: %v", err)
	}

	logrus.Info("Database seeded with demo data")
	return nil
}
