package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fasting/backend/internal/fasting"
	"fasting/backend/internal/model"
)

func TestPhaseStyle_CoversEveryPhase(t *testing.T) {
	for _, p := range fasting.Phases() {
		_, ok := phaseStyles[p.Hour]
		assert.True(t, ok, "no style for hour %d", p.Hour)
	}
	assert.Equal(t, Style{Color: fallbackColor}, PhaseStyle(5))
}

func TestCycleStyle(t *testing.T) {
	assert.Equal(t, "#DC2626", CycleStyle(model.CycleMenstrual).Color)
	assert.Equal(t, fallbackColor, CycleStyle("winter").Color)
}

func TestHoursColor(t *testing.T) {
	assert.Equal(t, "#10B981", HoursColor(16))
	assert.Equal(t, "#F59E0B", HoursColor(12))
	assert.Equal(t, "#EF4444", HoursColor(8))
	assert.Equal(t, fallbackColor, HoursColor(7.9))
}

func TestIntensityColor(t *testing.T) {
	assert.Equal(t, "#EF4444", IntensityColor(model.IntensityHigh))
	assert.Equal(t, fallbackColor, IntensityColor("extreme"))
}
