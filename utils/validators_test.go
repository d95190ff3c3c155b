package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-12.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestIsValidConfidence(t *testing.T) {
	assert.True(t, IsValidConfidence(0))
	assert.True(t, IsValidConfidence(87.5))
	assert.True(t, IsValidConfidence(100))
	assert.False(t, IsValidConfidence(-1))
	assert.False(t, IsValidConfidence(100.1))
	assert.False(t, IsValidConfidence(math.NaN()))
}

func TestIsValidCurrency(t *testing.T) {
	assert.True(t, IsValidCurrency("EUR"))
	assert.True(t, IsValidCurrency("USD"))
	assert.False(t, IsValidCurrency("eur"))
	assert.False(t, IsValidCurrency("EU"))
	assert.False(t, IsValidCurrency("EURO"))
	assert.False(t, IsValidCurrency("E1R"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("john@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Passw0rd"))
	assert.False(t, IsValidPassword("short"))
	assert.False(t, IsValidPassword("alllowercase"))
}
