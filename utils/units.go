package utils

// DistanceUnit and VolumeUnit tag legacy request payloads that still send
// imperial readings. Everything is normalized to km and liters before any
// economy math runs.
type DistanceUnit string

const (
	DistanceUnitKm   DistanceUnit = "KM"
	DistanceUnitMile DistanceUnit = "MILE"
)

type VolumeUnit string

const (
	VolumeUnitLiter  VolumeUnit = "LITER"
	VolumeUnitGallon VolumeUnit = "GALLON"
)

const (
	// KmPerMile is the exact international mile in kilometers.
	KmPerMile = 1.609344
	// LitersPerUSGallon is the exact US liquid gallon in liters.
	LitersPerUSGallon = 3.785411784
)

// ToKm converts a distance reading to kilometers. KM is identity.
func ToKm(value float64, unit DistanceUnit) float64 {
	if unit == DistanceUnitMile {
		return value * KmPerMile
	}
	return value
}

// ToLiters converts a fuel volume to liters. LITER is identity.
func ToLiters(value float64, unit VolumeUnit) float64 {
	if unit == VolumeUnitGallon {
		return value * LitersPerUSGallon
	}
	return value
}

// LitersPer100Km computes fuel consumption in L/100km. The caller must
// guarantee distanceKm > 0; the zero guard lives in the derived-fields
// calculator, which only invokes this when the distance is known positive.
func LitersPer100Km(distanceKm, volumeL float64) float64 {
	return (volumeL / distanceKm) * 100
}

// MpgFromMetric computes the equivalent miles-per-US-gallon figure from
// metric inputs. Same zero-guard contract as LitersPer100Km.
func MpgFromMetric(distanceKm, volumeL float64) float64 {
	return (distanceKm / KmPerMile) / (volumeL / LitersPerUSGallon)
}
