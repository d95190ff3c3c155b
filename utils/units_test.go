package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToKm(t *testing.T) {
	assert.Equal(t, 100.0, ToKm(100, DistanceUnitKm))
	assert.InDelta(t, 160.9344, ToKm(100, DistanceUnitMile), 1e-9)
}

func TestToLiters(t *testing.T) {
	assert.Equal(t, 40.0, ToLiters(40, VolumeUnitLiter))
	assert.InDelta(t, 37.85411784, ToLiters(10, VolumeUnitGallon), 1e-9)
}

func TestLitersPer100Km(t *testing.T) {
	// 40 L over 500 km is 8 L/100km
	assert.InDelta(t, 8.0, LitersPer100Km(500, 40), 1e-9)
	assert.InDelta(t, 5.0, LitersPer100Km(1000, 50), 1e-9)
}

func TestMpgFromMetric(t *testing.T) {
	// 500 km on 40 L is roughly 29.4 MPG
	assert.InDelta(t, 29.4, MpgFromMetric(500, 40), 0.05)
}

func TestEconomyCrossUnitIdentity(t *testing.T) {
	// mpg == 235.214583 / (L/100km) for any positive pair
	cases := []struct {
		distanceKm float64
		volumeL    float64
	}{
		{500, 40},
		{310, 17.5},
		{1200, 96},
		{42.5, 3.3},
	}

	for _, tc := range cases {
		l100 := LitersPer100Km(tc.distanceKm, tc.volumeL)
		mpg := MpgFromMetric(tc.distanceKm, tc.volumeL)
		assert.InDelta(t, 235.214583/l100, mpg, 1e-6)
	}
}
