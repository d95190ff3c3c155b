package services

import (
	"math"
	"testing"
	"time"

	"fuelcosmos-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(date time.Time, odometerKm, fuelVolumeL, totalCost float64) models.FillUpEntry {
	return models.FillUpEntry{
		EntryDate:   date,
		OdometerKm:  odometerKm,
		FuelVolumeL: fuelVolumeL,
		TotalCost:   totalCost,
		FillLevel:   models.FillLevelFull,
	}
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestComputeAggregateStats_Totals(t *testing.T) {
	stats := NewStatsService().ComputeAggregateStats([]models.FillUpEntry{
		entry(day(1), 10000, 40, 60),
		entry(day(10), 10500, 35, 50),
		entry(day(20), 11000, 45, 65),
	})

	assert.InDelta(t, 120.0, stats.TotalFuelL, 1e-9)
	assert.InDelta(t, 175.0, stats.TotalCost, 1e-9)
	assert.InDelta(t, 1000.0, stats.TotalDistanceKm, 1e-9)
	assert.Equal(t, 3, stats.EntryCount)

	require.NotNil(t, stats.AvgPricePerLiter)
	assert.InDelta(t, 175.0/120.0, *stats.AvgPricePerLiter, 1e-4)
}

func TestComputeAggregateStats_EmptyInput(t *testing.T) {
	stats := NewStatsService().ComputeAggregateStats(nil)

	assert.Zero(t, stats.TotalFuelL)
	assert.Zero(t, stats.TotalCost)
	assert.Zero(t, stats.TotalDistanceKm)
	assert.Equal(t, 0, stats.EntryCount)
	assert.Nil(t, stats.AvgEconomyLPer100Km)
	assert.Nil(t, stats.AvgEconomyMpg)
	assert.Nil(t, stats.AvgPricePerLiter)
}

func TestComputeAggregateStats_SkipsNonFiniteEntries(t *testing.T) {
	bad := entry(day(10), 10500, 35, math.NaN())
	stats := NewStatsService().ComputeAggregateStats([]models.FillUpEntry{
		entry(day(1), 10000, 40, 60),
		bad,
		entry(day(20), 11000, 45, 65),
	})

	assert.Equal(t, 2, stats.EntryCount)
	assert.InDelta(t, 85.0, stats.TotalFuelL, 1e-9)
	assert.InDelta(t, 125.0, stats.TotalCost, 1e-9)
	// The span still runs from the first to the last valid entry
	assert.InDelta(t, 1000.0, stats.TotalDistanceKm, 1e-9)
}

func TestComputeAggregateStats_SingleEntryHasNoDistance(t *testing.T) {
	stats := NewStatsService().ComputeAggregateStats([]models.FillUpEntry{
		entry(day(1), 10000, 40, 60),
	})

	assert.Zero(t, stats.TotalDistanceKm)
	assert.Equal(t, 1, stats.EntryCount)
}

func TestComputeAggregateStats_EconomyAveragesFullFillsOnly(t *testing.T) {
	full := entry(day(10), 10500, 40, 60)
	full.EconomyLPer100Km = ptr(8.0)
	full.EconomyMpg = ptr(29.4)

	partial := entry(day(20), 11000, 20, 30)
	partial.FillLevel = models.FillLevelPartial
	// A partial fill should be excluded even if economy values were
	// somehow present on it.
	partial.EconomyLPer100Km = ptr(4.0)
	partial.EconomyMpg = ptr(58.8)

	noEconomy := entry(day(1), 10000, 40, 60)

	stats := NewStatsService().ComputeAggregateStats([]models.FillUpEntry{noEconomy, full, partial})

	require.NotNil(t, stats.AvgEconomyLPer100Km)
	assert.InDelta(t, 8.0, *stats.AvgEconomyLPer100Km, 1e-9)
	require.NotNil(t, stats.AvgEconomyMpg)
	assert.InDelta(t, 29.4, *stats.AvgEconomyMpg, 1e-9)
}

func TestComputeAggregateStats_IndependentEconomyFilters(t *testing.T) {
	// The two averages filter independently: an entry with only one of
	// the two fields populated contributes to that average alone.
	lopsided := entry(day(10), 10500, 40, 60)
	lopsided.EconomyLPer100Km = ptr(8.0)

	stats := NewStatsService().ComputeAggregateStats([]models.FillUpEntry{lopsided})

	require.NotNil(t, stats.AvgEconomyLPer100Km)
	assert.InDelta(t, 8.0, *stats.AvgEconomyLPer100Km, 1e-9)
	assert.Nil(t, stats.AvgEconomyMpg)
}

func TestComputeFleetHealth(t *testing.T) {
	service := NewStatsService()

	e1 := entry(day(1), 10000, 40, 60)
	e1.EconomyMpg = ptr(30.0)
	e2 := entry(day(10), 10500, 40, 60)
	e2.EconomyMpg = ptr(50.0)

	health := service.ComputeFleetHealth([]models.FillUpEntry{e1, e2}, []float64{40, 60})

	require.NotNil(t, health.FleetAvgMpg)
	assert.InDelta(t, 40.0, *health.FleetAvgMpg, 1e-9)
	require.NotNil(t, health.ExpectedAvgMpg)
	assert.InDelta(t, 50.0, *health.ExpectedAvgMpg, 1e-9)
	require.NotNil(t, health.HealthScore)
	assert.InDelta(t, 80.0, *health.HealthScore, 1e-9)
}

func TestComputeFleetHealth_ScoreClampedAt120(t *testing.T) {
	e := entry(day(1), 10000, 40, 60)
	e.EconomyMpg = ptr(90.0)

	health := NewStatsService().ComputeFleetHealth([]models.FillUpEntry{e}, []float64{50})

	require.NotNil(t, health.HealthScore)
	assert.Equal(t, 120.0, *health.HealthScore)
}

func TestComputeFleetHealth_NilWhenEitherSideMissing(t *testing.T) {
	service := NewStatsService()

	// No expected ratings
	e := entry(day(1), 10000, 40, 60)
	e.EconomyMpg = ptr(30.0)
	health := service.ComputeFleetHealth([]models.FillUpEntry{e}, nil)
	assert.NotNil(t, health.FleetAvgMpg)
	assert.Nil(t, health.ExpectedAvgMpg)
	assert.Nil(t, health.HealthScore)

	// No economy data
	health = service.ComputeFleetHealth([]models.FillUpEntry{entry(day(1), 10000, 40, 60)}, []float64{50})
	assert.Nil(t, health.FleetAvgMpg)
	assert.NotNil(t, health.ExpectedAvgMpg)
	assert.Nil(t, health.HealthScore)
}

func TestComputeBudgetUsage(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	budget := &models.Budget{MonthlyAmount: 100}

	usage := NewStatsService().ComputeBudgetUsage([]models.FillUpEntry{
		entry(day(1), 10000, 40, 60),
		entry(day(10), 10500, 35, 50),
		// Previous month, must not count
		entry(time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC), 9500, 30, 45),
	}, budget, now)

	require.NotNil(t, usage)
	assert.Equal(t, "2026-03", usage.Month)
	assert.InDelta(t, 110.0, usage.SpentThisMonth, 1e-9)
	// Unbounded above: 110% used
	assert.InDelta(t, 110.0, usage.PercentUsed, 1e-9)
}

func TestComputeBudgetUsage_NilBudget(t *testing.T) {
	usage := NewStatsService().ComputeBudgetUsage(nil, nil, time.Now())
	assert.Nil(t, usage)
}

func TestComputeBudgetUsage_SkipsNonFiniteCosts(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	budget := &models.Budget{MonthlyAmount: 100}

	usage := NewStatsService().ComputeBudgetUsage([]models.FillUpEntry{
		entry(day(1), 10000, 40, 60),
		entry(day(10), 10500, 35, math.Inf(1)),
	}, budget, now)

	require.NotNil(t, usage)
	assert.InDelta(t, 60.0, usage.SpentThisMonth, 1e-9)
}
