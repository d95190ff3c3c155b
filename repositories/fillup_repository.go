package repositories

import (
	"errors"
	"time"

	"fuelcosmos-api/models"

	"gorm.io/gorm"
)

type FillUpRepository struct {
	db *gorm.DB
}

func NewFillUpRepository(db *gorm.DB) *FillUpRepository {
	return &FillUpRepository{db: db}
}

// FindPrecedingEntry returns the entry with the largest odometer reading
// strictly below odometerKm within the (user, vehicle, tank-or-null)
// scope, or nil when none exists. Ordering is by odometer, not by date,
// so a back-filled historical record with a lower reading becomes the
// reference point regardless of when it was entered.
func (r *FillUpRepository) FindPrecedingEntry(userID, vehicleID string, tankProfileID *string, odometerKm float64) (*models.FillUpEntry, error) {
	query := r.db.
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Where("odometer_km < ?", odometerKm)

	if tankProfileID != nil {
		query = query.Where("tank_profile_id = ?", *tankProfileID)
	} else {
		query = query.Where("tank_profile_id IS NULL")
	}

	var entry models.FillUpEntry
	err := query.Order("odometer_km DESC").First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *FillUpRepository) Create(entry *models.FillUpEntry) error {
	return r.db.Create(entry).Error
}

func (r *FillUpRepository) GetByID(userID, entryID string) (*models.FillUpEntry, error) {
	var entry models.FillUpEntry
	err := r.db.First(&entry, "id = ? AND user_id = ?", entryID, userID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *FillUpRepository) Delete(entry *models.FillUpEntry) error {
	return r.db.Delete(entry).Error
}

// ListByVehicle returns a vehicle's entries ordered by entry date
// ascending, the ordering the aggregate statistics calculator relies on
// for its distance-span computation.
func (r *FillUpRepository) ListByVehicle(userID, vehicleID string, tankProfileID *string) ([]models.FillUpEntry, error) {
	query := r.db.Where("user_id = ? AND vehicle_id = ?", userID, vehicleID)
	if tankProfileID != nil {
		query = query.Where("tank_profile_id = ?", *tankProfileID)
	}

	var entries []models.FillUpEntry
	err := query.Order("entry_date ASC").Find(&entries).Error
	return entries, err
}

// ListByUser returns all of a user's entries ordered by entry date ascending.
func (r *FillUpRepository) ListByUser(userID string) ([]models.FillUpEntry, error) {
	var entries []models.FillUpEntry
	err := r.db.Where("user_id = ?", userID).Order("entry_date ASC").Find(&entries).Error
	return entries, err
}

// SumCostForMonth sums total cost for a user's entries within one
// calendar month. Used by the budget alert job so it does not have to
// materialize the full history.
func (r *FillUpRepository) SumCostForMonth(userID string, year int, month time.Month) (float64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var total float64
	err := r.db.Model(&models.FillUpEntry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID, start, end).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&total).Error
	return total, err
}
