package services

import (
	"fmt"

	"fuelcosmos-api/models"
	"fuelcosmos-api/utils"
)

// ValidationError marks invalid client input to the derived-fields
// calculator. Controllers map it to a 400 response; the entry is not
// created.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PrecedingEntryFinder is the single history-lookup capability the
// calculator needs: the entry with the largest odometer reading strictly
// below the given one within the (user, vehicle, tank-or-null) scope, or
// nil when none exists.
type PrecedingEntryFinder interface {
	FindPrecedingEntry(userID, vehicleID string, tankProfileID *string, odometerKm float64) (*models.FillUpEntry, error)
}

// FillUpInput carries the raw measured values of a new entry. Either the
// metric fields (OdometerKm, FuelVolumeL) or the legacy unit-tagged pair
// (Odometer+OdometerUnit, FuelVolume+FuelUnit) must be set; metric fields
// win when both are present.
type FillUpInput struct {
	OdometerKm   *float64
	FuelVolumeL  *float64
	Odometer     *float64
	OdometerUnit utils.DistanceUnit
	FuelVolume   *float64
	FuelUnit     utils.VolumeUnit
	TotalCost    float64
	FillLevel    models.FillLevel
}

// DerivedFields is the calculator output, ready for persistence by the
// caller. The four pointer fields are nil when no qualifying predecessor
// exists; the economy pair is additionally nil for PARTIAL fills.
type DerivedFields struct {
	OdometerKm          float64
	FuelVolumeL         float64
	PricePerLiter       float64
	DistanceSinceLastKm *float64
	EconomyLPer100Km    *float64
	EconomyMpg          *float64
	CostPerKm           *float64
}

type FillUpService struct {
	history PrecedingEntryFinder
}

func NewFillUpService(history PrecedingEntryFinder) *FillUpService {
	return &FillUpService{history: history}
}

// ComputeDerivedFields resolves the raw input to metric values, validates
// it, and produces the five derived fields from the vehicle's history.
// It performs exactly one read against the entry store and no writes.
func (s *FillUpService) ComputeDerivedFields(userID, vehicleID string, tankProfileID *string, input FillUpInput) (*DerivedFields, error) {
	odometerKm, err := resolveOdometerKm(input)
	if err != nil {
		return nil, err
	}

	fuelVolumeL, err := resolveFuelVolumeL(input)
	if err != nil {
		return nil, err
	}

	if !utils.IsFinite(input.TotalCost) {
		return nil, NewValidationError("Total cost must be a finite number")
	}
	if fuelVolumeL <= 0 || input.TotalCost <= 0 {
		return nil, NewValidationError("Fuel volume and total cost must be greater than zero")
	}

	derived := &DerivedFields{
		OdometerKm:    odometerKm,
		FuelVolumeL:   fuelVolumeL,
		PricePerLiter: input.TotalCost / fuelVolumeL,
	}

	previous, err := s.history.FindPrecedingEntry(userID, vehicleID, tankProfileID, odometerKm)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return derived, nil
	}

	dist := odometerKm - previous.OdometerKm
	if dist <= 0 {
		// Duplicate or out-of-order odometer value; treat as no usable
		// predecessor rather than producing non-positive economy.
		return derived, nil
	}

	costPerKm := input.TotalCost / dist
	derived.DistanceSinceLastKm = &dist
	derived.CostPerKm = &costPerKm

	// A partial fill does not represent a full tank-to-tank consumption
	// interval, so it never gets economy figures.
	if input.FillLevel == models.FillLevelFull {
		l100 := utils.LitersPer100Km(dist, fuelVolumeL)
		mpg := utils.MpgFromMetric(dist, fuelVolumeL)
		derived.EconomyLPer100Km = &l100
		derived.EconomyMpg = &mpg
	}

	return derived, nil
}

func resolveOdometerKm(input FillUpInput) (float64, error) {
	switch {
	case input.OdometerKm != nil:
		if !utils.IsFinite(*input.OdometerKm) {
			return 0, NewValidationError("Odometer reading must be a finite number")
		}
		return *input.OdometerKm, nil
	case input.Odometer != nil:
		if !utils.IsFinite(*input.Odometer) {
			return 0, NewValidationError("Odometer reading must be a finite number")
		}
		if input.OdometerUnit != utils.DistanceUnitKm && input.OdometerUnit != utils.DistanceUnitMile {
			return 0, NewValidationError("Odometer unit must be KM or MILE")
		}
		return utils.ToKm(*input.Odometer, input.OdometerUnit), nil
	default:
		return 0, NewValidationError("Odometer reading is required")
	}
}

func resolveFuelVolumeL(input FillUpInput) (float64, error) {
	switch {
	case input.FuelVolumeL != nil:
		if !utils.IsFinite(*input.FuelVolumeL) {
			return 0, NewValidationError("Fuel volume must be a finite number")
		}
		return *input.FuelVolumeL, nil
	case input.FuelVolume != nil:
		if !utils.IsFinite(*input.FuelVolume) {
			return 0, NewValidationError("Fuel volume must be a finite number")
		}
		if input.FuelUnit != utils.VolumeUnitLiter && input.FuelUnit != utils.VolumeUnitGallon {
			return 0, NewValidationError("Fuel unit must be LITER or GALLON")
		}
		return utils.ToLiters(*input.FuelVolume, input.FuelUnit), nil
	default:
		return 0, NewValidationError("Fuel volume is required")
	}
}
