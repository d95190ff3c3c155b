package models

// VehicleStats is an ephemeral aggregate over a set of fill-up entries,
// recomputed from the entry set at query time. Averages are nil when no
// qualifying entries exist.
type VehicleStats struct {
	TotalFuelL          float64  `json:"totalFuelL"`
	TotalCost           float64  `json:"totalCost"`
	TotalDistanceKm     float64  `json:"totalDistanceKm"`
	AvgEconomyLPer100Km *float64 `json:"avgEconomyLPer100Km"`
	AvgEconomyMpg       *float64 `json:"avgEconomyMpg"`
	AvgPricePerLiter    *float64 `json:"avgPricePerLiter"`
	EntryCount          int      `json:"entryCount"`
}

// FleetHealth compares the fleet-wide average economy against the mean of
// the vehicles' manufacturer ratings. HealthScore is clamped to [0, 120]
// and nil when either side of the ratio is unavailable.
type FleetHealth struct {
	FleetAvgMpg    *float64 `json:"fleetAvgMpg"`
	ExpectedAvgMpg *float64 `json:"expectedAvgMpg"`
	HealthScore    *float64 `json:"healthScore"`
}
