package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityFromMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		mag      float64
		expected Severity
	}{
		{"below all thresholds", 4.5, SeverityLow},
		{"just under medium", 4.99, SeverityLow},
		{"medium boundary", 5.0, SeverityMedium},
		{"high boundary", 6.0, SeverityHigh},
		{"critical boundary", 7.0, SeverityCritical},
		{"great earthquake", 9.1, SeverityCritical},
		{"missing magnitude", 0, SeverityLow},
		{"negative magnitude", -1.2, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeverityFromMagnitude(tt.mag))
		})
	}
}

func TestSeverityFromMagnitude_Monotonic(t *testing.T) {
	prev := -1
	for mag := 0.0; mag <= 10.0; mag += 0.1 {
		rank := SeverityFromMagnitude(mag).Rank()
		assert.GreaterOrEqual(t, rank, prev, "severity rank decreased at magnitude %.1f", mag)
		prev = rank
	}
}

func TestSeverityFromFatalities(t *testing.T) {
	tests := []struct {
		name       string
		fatalities int
		expected   Severity
	}{
		{"zero", 0, SeverityLow},
		{"under medium", 4, SeverityLow},
		{"medium boundary", 5, SeverityMedium},
		{"between medium and high", 15, SeverityMedium},
		{"high boundary", 20, SeverityHigh},
		{"under critical", 99, SeverityHigh},
		{"critical boundary", 100, SeverityCritical},
		{"negative treated as zero bucket", -3, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeverityFromFatalities(tt.fatalities))
		})
	}
}

func TestSeverityFromCategory(t *testing.T) {
	assert.Equal(t, SeverityHigh, SeverityFromCategory(CategoryConflict))
	assert.Equal(t, SeverityHigh, SeverityFromCategory(CategoryViolence))
	assert.Equal(t, SeverityMedium, SeverityFromCategory(CategoryEarthquake))
	assert.Equal(t, SeverityMedium, SeverityFromCategory(CategoryWeather))
	assert.Equal(t, SeverityMedium, SeverityFromCategory(CategoryInfo))
}

func TestSeverityRank_TotalOrder(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Greater(t, SeverityLow.Rank(), SeverityInfo.Rank())
	assert.Greater(t, SeverityInfo.Rank(), Severity("bogus").Rank())
}
