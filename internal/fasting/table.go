package fasting

import "fasting/backend/internal/model"

// phases is ordered by Hour, strictly increasing. Resolve and Progress rely on it.
var phases = []model.FastingPhase{
	{
		Hour:        0,
		Title:       "Fed State",
		Description: "Your body is processing the last meal",
		Benefits:    []string{"Digestion active", "Insulin elevated", "Glucose being used"},
		Intensity:   model.IntensityLow,
	},
	{
		Hour:        1,
		Title:       "Early Digestion",
		Description: "Food is being broken down and absorbed",
		Benefits:    []string{"Nutrients entering bloodstream", "Energy readily available", "Metabolism active"},
		Intensity:   model.IntensityLow,
	},
	{
		Hour:        2,
		Title:       "Post-Absorptive",
		Description: "Transitioning from fed to fasted state",
		Benefits:    []string{"Insulin starting to drop", "Glycogen stores being used", "Fat oxidation beginning"},
		Intensity:   model.IntensityLow,
	},
	{
		Hour:        3,
		Title:       "Early Fasting",
		Description: "Body switches to stored energy",
		Benefits:    []string{"Glycogen breakdown active", "Insulin levels dropping", "Fat burning increases"},
		Intensity:   model.IntensityMedium,
	},
	{
		Hour:        4,
		Title:       "Glycogen Depletion",
		Description: "Liver glycogen stores being utilized",
		Benefits:    []string{"Enhanced fat oxidation", "Ketone production starts", "Mental clarity improves"},
		Intensity:   model.IntensityMedium,
	},
	{
		Hour:        6,
		Title:       "Fat Burning Mode",
		Description: "Primary fuel source shifts to fat",
		Benefits:    []string{"Significant fat oxidation", "Ketones increasing", "Appetite suppression"},
		Intensity:   model.IntensityMedium,
	},
	{
		Hour:        8,
		Title:       "Metabolic Switch",
		Description: "Deep metabolic adaptation occurring",
		Benefits:    []string{"Optimal fat burning", "Ketosis deepening", "Growth hormone rising"},
		Intensity:   model.IntensityHigh,
	},
	{
		Hour:        10,
		Title:       "Enhanced Ketosis",
		Description: "Body fully adapted to fasting state",
		Benefits:    []string{"Peak ketone production", "Maximum mental clarity", "Cellular repair active"},
		Intensity:   model.IntensityHigh,
	},
	{
		Hour:        12,
		Title:       "Autophagy Activation",
		Description: "Cellular cleanup and renewal begins",
		Benefits:    []string{"Autophagy initiated", "Cellular detox", "Anti-aging benefits"},
		Intensity:   model.IntensityHigh,
	},
	{
		Hour:        14,
		Title:       "Deep Autophagy",
		Description: "Intensive cellular repair and renewal",
		Benefits:    []string{"Enhanced autophagy", "Protein recycling", "Immune system boost"},
		Intensity:   model.IntensityHigh,
	},
	{
		Hour:        16,
		Title:       "Optimal Fasting",
		Description: "Peak fasting benefits achieved",
		Benefits:    []string{"Maximum autophagy", "Stem cell activation", "Longevity pathways active"},
		Intensity:   model.IntensityHigh,
	},
	{
		Hour:        18,
		Title:       "Extended Benefits",
		Description: "Advanced fasting state with enhanced benefits",
		Benefits:    []string{"Deep cellular renewal", "Enhanced neuroplasticity", "Maximum fat adaptation"},
		Intensity:   model.IntensityHigh,
	},
}

// Phases returns a copy of the timeline in ascending hour order.
func Phases() []model.FastingPhase {
	out := make([]model.FastingPhase, len(phases))
	for i, p := range phases {
		out[i] = clonePhase(p)
	}
	return out
}

// MaxHour is the hour of the last phase; progress is complete from here on.
func MaxHour() int {
	return phases[len(phases)-1].Hour
}

func clonePhase(p model.FastingPhase) model.FastingPhase {
	p.Benefits = append([]string(nil), p.Benefits...)
	return p
}
