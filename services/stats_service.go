package services

import (
	"time"

	"fuelcosmos-api/models"
	"fuelcosmos-api/utils"

	"github.com/sirupsen/logrus"
)

// StatsService reduces already-fetched entry collections into summaries.
// Every method is side-effect-free over its input slice; callers supply
// entries ordered by entry date ascending (the repository does this),
// which the distance-span computation relies on.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// ComputeAggregateStats rolls a vehicle's (or any) entry collection into
// totals and averages. Entries with non-finite numeric fields are logged
// and excluded rather than failing the whole aggregation.
func (s *StatsService) ComputeAggregateStats(entries []models.FillUpEntry) models.VehicleStats {
	filtered := make([]models.FillUpEntry, 0, len(entries))
	for _, entry := range entries {
		if !utils.IsFinite(entry.OdometerKm) || !utils.IsFinite(entry.FuelVolumeL) || !utils.IsFinite(entry.TotalCost) {
			logrus.WithFields(logrus.Fields{
				"entry_id":   entry.ID,
				"vehicle_id": entry.VehicleID,
			}).Warn("skipping fill-up entry with non-finite values in aggregation")
			continue
		}
		filtered = append(filtered, entry)
	}

	stats := models.VehicleStats{EntryCount: len(filtered)}
	for _, entry := range filtered {
		stats.TotalFuelL += entry.FuelVolumeL
		stats.TotalCost += entry.TotalCost
	}

	if len(filtered) >= 2 {
		stats.TotalDistanceKm = filtered[len(filtered)-1].OdometerKm - filtered[0].OdometerKm
	}

	// The two economy averages are filtered independently: each takes the
	// full fills where its own field is populated. In practice the fields
	// are co-populated, but independent filtering is preserved.
	stats.AvgEconomyLPer100Km = meanOf(filtered, func(e models.FillUpEntry) *float64 {
		if e.FillLevel != models.FillLevelFull {
			return nil
		}
		return e.EconomyLPer100Km
	})
	stats.AvgEconomyMpg = meanOf(filtered, func(e models.FillUpEntry) *float64 {
		if e.FillLevel != models.FillLevelFull {
			return nil
		}
		return e.EconomyMpg
	})

	if stats.TotalFuelL > 0 {
		avgPrice := stats.TotalCost / stats.TotalFuelL
		stats.AvgPricePerLiter = &avgPrice
	}

	return stats
}

// ComputeFleetHealth compares the fleet-wide average MPG across all of a
// user's entries against the mean manufacturer rating of the vehicles
// that have one. The score is clamped to [0, 120] and nil when either
// side of the ratio is unavailable.
func (s *StatsService) ComputeFleetHealth(entries []models.FillUpEntry, expectedMpgValues []float64) models.FleetHealth {
	health := models.FleetHealth{}

	health.FleetAvgMpg = meanOf(entries, func(e models.FillUpEntry) *float64 {
		if e.FillLevel != models.FillLevelFull {
			return nil
		}
		return e.EconomyMpg
	})

	if len(expectedMpgValues) > 0 {
		sum := 0.0
		for _, v := range expectedMpgValues {
			sum += v
		}
		expected := sum / float64(len(expectedMpgValues))
		health.ExpectedAvgMpg = &expected
	}

	if health.FleetAvgMpg != nil && health.ExpectedAvgMpg != nil && *health.ExpectedAvgMpg > 0 {
		ratio := *health.FleetAvgMpg / *health.ExpectedAvgMpg
		score := clamp(0, 120, ratio*100)
		health.HealthScore = &score
	}

	return health
}

// ComputeBudgetUsage sums the cost of entries dated in now's calendar
// month against the configured monthly amount. PercentUsed is unbounded
// above; clamping is a presentation concern.
func (s *StatsService) ComputeBudgetUsage(entries []models.FillUpEntry, budget *models.Budget, now time.Time) *models.BudgetUsage {
	if budget == nil {
		return nil
	}

	spent := 0.0
	for _, entry := range entries {
		if !utils.IsFinite(entry.TotalCost) {
			continue
		}
		if entry.EntryDate.Year() == now.Year() && entry.EntryDate.Month() == now.Month() {
			spent += entry.TotalCost
		}
	}

	usage := &models.BudgetUsage{
		Month:          now.Format("2006-01"),
		MonthlyAmount:  budget.MonthlyAmount,
		SpentThisMonth: spent,
	}
	if budget.MonthlyAmount > 0 {
		usage.PercentUsed = spent / budget.MonthlyAmount * 100
	}
	return usage
}

func meanOf(entries []models.FillUpEntry, pick func(models.FillUpEntry) *float64) *float64 {
	sum := 0.0
	count := 0
	for _, entry := range entries {
		if v := pick(entry); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}

func clamp(min, max, v float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
