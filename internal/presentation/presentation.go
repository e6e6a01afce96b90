// Package presentation maps domain identifiers to display tokens for clients.
package presentation

import "fasting/backend/internal/model"

type Style struct {
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

const fallbackColor = "#6B7280"

var phaseStyles = map[int]Style{
	0:  {Color: "#6B7280", Icon: "🍽️"},
	1:  {Color: "#6B7280", Icon: "⚡"},
	2:  {Color: "#8B5CF6", Icon: "🔄"},
	3:  {Color: "#8B5CF6", Icon: "🔥"},
	4:  {Color: "#10B981", Icon: "🧠"},
	6:  {Color: "#10B981", Icon: "💪"},
	8:  {Color: "#F59E0B", Icon: "⚡"},
	10: {Color: "#F59E0B", Icon: "🌟"},
	12: {Color: "#E91E63", Icon: "🔬"},
	14: {Color: "#E91E63", Icon: "🛡️"},
	16: {Color: "#DC2626", Icon: "💎"},
	18: {Color: "#DC2626", Icon: "🚀"},
}

var cycleStyles = map[model.CyclePhase]Style{
	model.CycleMenstrual:  {Color: "#DC2626", Icon: "moon"},
	model.CycleFollicular: {Color: "#10B981", Icon: "flower"},
	model.CycleOvulation:  {Color: "#F59E0B", Icon: "sun"},
	model.CycleLuteal:     {Color: "#8B5CF6", Icon: "heart"},
}

var intensityColors = map[model.Intensity]string{
	model.IntensityLow:    "#10B981",
	model.IntensityMedium: "#F59E0B",
	model.IntensityHigh:   "#EF4444",
}

// PhaseStyle is keyed by the phase's hour.
func PhaseStyle(hour int) Style {
	if s, ok := phaseStyles[hour]; ok {
		return s
	}
	return Style{Color: fallbackColor}
}

func CycleStyle(p model.CyclePhase) Style {
	if s, ok := cycleStyles[p]; ok {
		return s
	}
	return Style{Color: fallbackColor}
}

func IntensityColor(i model.Intensity) string {
	if c, ok := intensityColors[i]; ok {
		return c
	}
	return fallbackColor
}

// HoursColor bands a logged fast for the calendar view.
func HoursColor(hours float64) string {
	switch {
	case hours >= 16:
		return "#10B981"
	case hours >= 12:
		return "#F59E0B"
	case hours >= 8:
		return "#EF4444"
	default:
		return fallbackColor
	}
}
