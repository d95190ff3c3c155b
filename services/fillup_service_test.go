package services

import (
	"errors"
	"math"
	"testing"

	"fuelcosmos-api/models"
	"fuelcosmos-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHistory implements PrecedingEntryFinder over an in-memory slice,
// mirroring the repository's odometer-descending scoped lookup.
type fakeHistory struct {
	entries []models.FillUpEntry
	err     error
}

func (f *fakeHistory) FindPrecedingEntry(userID, vehicleID string, tankProfileID *string, odometerKm float64) (*models.FillUpEntry, error) {
	if f.err != nil {
		return nil, f.err
	}

	var best *models.FillUpEntry
	for i := range f.entries {
		e := &f.entries[i]
		if e.UserID != userID || e.VehicleID != vehicleID {
			continue
		}
		if (e.TankProfileID == nil) != (tankProfileID == nil) {
			continue
		}
		if e.TankProfileID != nil && tankProfileID != nil && *e.TankProfileID != *tankProfileID {
			continue
		}
		if e.OdometerKm >= odometerKm {
			continue
		}
		if best == nil || e.OdometerKm > best.OdometerKm {
			best = e
		}
	}
	return best, nil
}

func ptr(v float64) *float64 {
	return &v
}

func historyWithEntryAt(odometerKm float64) *fakeHistory {
	return &fakeHistory{entries: []models.FillUpEntry{
		{ID: "prev", UserID: "user-1", VehicleID: "vehicle-1", OdometerKm: odometerKm},
	}}
}

func TestComputeDerivedFields_FullFillWithPredecessor(t *testing.T) {
	service := NewFillUpService(historyWithEntryAt(10000))

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(40),
		TotalCost:   60,
		FillLevel:   models.FillLevelFull,
	})
	require.NoError(t, err)

	assert.Equal(t, 10500.0, derived.OdometerKm)
	assert.Equal(t, 40.0, derived.FuelVolumeL)
	assert.InDelta(t, 1.5, derived.PricePerLiter, 1e-9)

	require.NotNil(t, derived.DistanceSinceLastKm)
	assert.InDelta(t, 500.0, *derived.DistanceSinceLastKm, 1e-9)

	require.NotNil(t, derived.EconomyLPer100Km)
	assert.InDelta(t, 8.0, *derived.EconomyLPer100Km, 1e-9)

	require.NotNil(t, derived.EconomyMpg)
	assert.InDelta(t, 29.4, *derived.EconomyMpg, 0.05)

	require.NotNil(t, derived.CostPerKm)
	assert.InDelta(t, 60.0/500.0, *derived.CostPerKm, 1e-9)
}

func TestComputeDerivedFields_PartialFillGetsNoEconomy(t *testing.T) {
	service := NewFillUpService(historyWithEntryAt(10000))

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(40),
		TotalCost:   60,
		FillLevel:   models.FillLevelPartial,
	})
	require.NoError(t, err)

	require.NotNil(t, derived.DistanceSinceLastKm)
	assert.InDelta(t, 500.0, *derived.DistanceSinceLastKm, 1e-9)

	// Cost per km is populated regardless of fill level
	require.NotNil(t, derived.CostPerKm)
	assert.InDelta(t, 0.12, *derived.CostPerKm, 1e-9)

	assert.Nil(t, derived.EconomyLPer100Km)
	assert.Nil(t, derived.EconomyMpg)
}

func TestComputeDerivedFields_NoPredecessor(t *testing.T) {
	service := NewFillUpService(&fakeHistory{})

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(40),
		TotalCost:   60,
		FillLevel:   models.FillLevelFull,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.5, derived.PricePerLiter, 1e-9)
	assert.Nil(t, derived.DistanceSinceLastKm)
	assert.Nil(t, derived.EconomyLPer100Km)
	assert.Nil(t, derived.EconomyMpg)
	assert.Nil(t, derived.CostPerKm)
}

func TestComputeDerivedFields_OutOfOrderOdometer(t *testing.T) {
	// Predecessor sits at a higher reading than the new entry; the scoped
	// lookup finds nothing below 9000 here, and a non-positive distance
	// from a duplicate reading must behave the same way.
	service := NewFillUpService(historyWithEntryAt(10000))

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(9000),
		FuelVolumeL: ptr(40),
		TotalCost:   60,
		FillLevel:   models.FillLevelFull,
	})
	require.NoError(t, err)

	assert.Nil(t, derived.DistanceSinceLastKm)
	assert.Nil(t, derived.EconomyLPer100Km)
	assert.Nil(t, derived.EconomyMpg)
	assert.Nil(t, derived.CostPerKm)
}

// stubFinder returns a fixed entry regardless of scope, letting tests
// exercise the calculator's own non-positive-distance guard.
type stubFinder struct {
	entry *models.FillUpEntry
}

func (s *stubFinder) FindPrecedingEntry(userID, vehicleID string, tankProfileID *string, odometerKm float64) (*models.FillUpEntry, error) {
	return s.entry, nil
}

func TestComputeDerivedFields_NonPositiveDistanceGuard(t *testing.T) {
	// Even if the store hands back an entry at the same (or a higher)
	// reading, the calculator treats it as no usable predecessor.
	service := NewFillUpService(&stubFinder{entry: &models.FillUpEntry{
		UserID: "user-1", VehicleID: "vehicle-1", OdometerKm: 10500,
	}})

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(40),
		TotalCost:   60,
		FillLevel:   models.FillLevelFull,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.5, derived.PricePerLiter, 1e-9)
	assert.Nil(t, derived.DistanceSinceLastKm)
	assert.Nil(t, derived.EconomyLPer100Km)
	assert.Nil(t, derived.EconomyMpg)
	assert.Nil(t, derived.CostPerKm)
}

func TestComputeDerivedFields_PredecessorByOdometerNotDate(t *testing.T) {
	// A back-filled record with a lower odometer reading is the reference
	// point even though other entries are further away in both directions.
	history := &fakeHistory{entries: []models.FillUpEntry{
		{ID: "far-below", UserID: "user-1", VehicleID: "vehicle-1", OdometerKm: 9000},
		{ID: "nearest", UserID: "user-1", VehicleID: "vehicle-1", OdometerKm: 10200},
		{ID: "above", UserID: "user-1", VehicleID: "vehicle-1", OdometerKm: 11000},
	}}
	service := NewFillUpService(history)

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(30),
		TotalCost:   45,
		FillLevel:   models.FillLevelFull,
	})
	require.NoError(t, err)

	require.NotNil(t, derived.DistanceSinceLastKm)
	assert.InDelta(t, 300.0, *derived.DistanceSinceLastKm, 1e-9)
}

func TestComputeDerivedFields_TankScopeIsolation(t *testing.T) {
	mainTank := "tank-main"
	reserveTank := "tank-reserve"
	history := &fakeHistory{entries: []models.FillUpEntry{
		{ID: "main", UserID: "user-1", VehicleID: "vehicle-1", TankProfileID: &mainTank, OdometerKm: 10400},
		{ID: "no-tank", UserID: "user-1", VehicleID: "vehicle-1", OdometerKm: 10450},
	}}
	service := NewFillUpService(history)

	// Entry scoped to the reserve tank sees neither the main tank nor the
	// no-tank entries.
	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", &reserveTank, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(10),
		TotalCost:   15,
		FillLevel:   models.FillLevelFull,
	})
	require.NoError(t, err)
	assert.Nil(t, derived.DistanceSinceLastKm)

	// The no-tank scope only matches entries without a tank profile.
	derived, err = service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(10),
		TotalCost:   15,
		FillLevel:   models.FillLevelFull,
	})
	require.NoError(t, err)
	require.NotNil(t, derived.DistanceSinceLastKm)
	assert.InDelta(t, 50.0, *derived.DistanceSinceLastKm, 1e-9)
}

func TestComputeDerivedFields_LegacyUnitInput(t *testing.T) {
	service := NewFillUpService(&fakeHistory{})

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		Odometer:     ptr(100),
		OdometerUnit: utils.DistanceUnitMile,
		FuelVolume:   ptr(10),
		FuelUnit:     utils.VolumeUnitGallon,
		TotalCost:    50,
		FillLevel:    models.FillLevelFull,
	})
	require.NoError(t, err)

	assert.InDelta(t, 160.9344, derived.OdometerKm, 1e-9)
	assert.InDelta(t, 37.85411784, derived.FuelVolumeL, 1e-9)
}

func TestComputeDerivedFields_MetricFieldsWinOverLegacy(t *testing.T) {
	service := NewFillUpService(&fakeHistory{})

	derived, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:   ptr(10500),
		FuelVolumeL:  ptr(40),
		Odometer:     ptr(999),
		OdometerUnit: utils.DistanceUnitMile,
		FuelVolume:   ptr(1),
		FuelUnit:     utils.VolumeUnitGallon,
		TotalCost:    60,
		FillLevel:    models.FillLevelFull,
	})
	require.NoError(t, err)

	assert.Equal(t, 10500.0, derived.OdometerKm)
	assert.Equal(t, 40.0, derived.FuelVolumeL)
}

func TestComputeDerivedFields_ValidationErrors(t *testing.T) {
	service := NewFillUpService(&fakeHistory{})

	cases := []struct {
		name  string
		input FillUpInput
	}{
		{"missing odometer", FillUpInput{FuelVolumeL: ptr(40), TotalCost: 60, FillLevel: models.FillLevelFull}},
		{"missing fuel volume", FillUpInput{OdometerKm: ptr(10500), TotalCost: 60, FillLevel: models.FillLevelFull}},
		{"NaN odometer", FillUpInput{OdometerKm: ptr(math.NaN()), FuelVolumeL: ptr(40), TotalCost: 60, FillLevel: models.FillLevelFull}},
		{"infinite fuel volume", FillUpInput{OdometerKm: ptr(10500), FuelVolumeL: ptr(math.Inf(1)), TotalCost: 60, FillLevel: models.FillLevelFull}},
		{"NaN total cost", FillUpInput{OdometerKm: ptr(10500), FuelVolumeL: ptr(40), TotalCost: math.NaN(), FillLevel: models.FillLevelFull}},
		{"zero fuel volume", FillUpInput{OdometerKm: ptr(10500), FuelVolumeL: ptr(0), TotalCost: 60, FillLevel: models.FillLevelFull}},
		{"negative total cost", FillUpInput{OdometerKm: ptr(10500), FuelVolumeL: ptr(40), TotalCost: -5, FillLevel: models.FillLevelFull}},
		{"bad odometer unit", FillUpInput{Odometer: ptr(100), OdometerUnit: "FURLONG", FuelVolumeL: ptr(40), TotalCost: 60, FillLevel: models.FillLevelFull}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, tc.input)
			require.Error(t, err)

			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestComputeDerivedFields_HistoryErrorPropagates(t *testing.T) {
	lookupErr := errors.New("connection lost")
	service := NewFillUpService(&fakeHistory{err: lookupErr})

	_, err := service.ComputeDerivedFields("user-1", "vehicle-1", nil, FillUpInput{
		OdometerKm:  ptr(10500),
		FuelVolumeL: ptr(40),
		TotalCost:   60,
		FillLevel:   models.FillLevelFull,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}
