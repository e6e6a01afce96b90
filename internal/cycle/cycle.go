package cycle

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fasting/backend/internal/model"
)

const (
	MinCustomHours = 8
	MaxCustomHours = 24
)

var (
	ErrUnknownPhase       = errors.New("unknown cycle phase")
	ErrInvalidCustomHours = errors.New("custom hours must be between 8 and 24")
)

var order = []model.CyclePhase{
	model.CycleMenstrual,
	model.CycleFollicular,
	model.CycleOvulation,
	model.CycleLuteal,
}

var table = map[model.CyclePhase]model.CyclePhaseInfo{
	model.CycleMenstrual: {
		Phase:            model.CycleMenstrual,
		Name:             "Menstrual Phase",
		DayRange:         "1-7",
		RecommendedHours: 12,
		FastingWindow:    "12:12",
		Description:      "Rest and gentle fasting",
		Tips: []string{
			"Shorter fasting windows (12-14 hours)",
			"Focus on nutrient-dense foods",
			"Stay hydrated and get extra rest",
			"Gentle movement and self-care",
		},
		Benefits: []string{"Gentle detox", "Reduced inflammation", "Better sleep"},
	},
	model.CycleFollicular: {
		Phase:            model.CycleFollicular,
		Name:             "Follicular Phase",
		DayRange:         "1-13",
		RecommendedHours: 16,
		FastingWindow:    "16:8",
		Description:      "Building energy phase",
		Tips: []string{
			"Standard 16:8 fasting works well",
			"Increase protein and healthy fats",
			"Great time for new challenges",
			"Higher intensity workouts",
		},
		Benefits: []string{"Increased energy", "Better focus", "Muscle building"},
	},
	model.CycleOvulation: {
		Phase:            model.CycleOvulation,
		Name:             "Ovulation Phase",
		DayRange:         "14",
		RecommendedHours: 18,
		FastingWindow:    "18:6",
		Description:      "Peak energy and metabolism",
		Tips: []string{
			"Longer fasting windows (16-18 hours)",
			"Optimal fat burning window",
			"High-intensity workouts",
			"Social activities and challenges",
		},
		Benefits: []string{"Peak metabolism", "Maximum fat burn", "High energy"},
	},
	model.CycleLuteal: {
		Phase:            model.CycleLuteal,
		Name:             "Luteal Phase",
		DayRange:         "15-28",
		RecommendedHours: 14,
		FastingWindow:    "14:10",
		Description:      "Prepare for next cycle",
		Tips: []string{
			"Flexible fasting windows (14-16 hours)",
			"Increase complex carbs",
			"Stress management priority",
			"Gentle yoga and walks",
		},
		Benefits: []string{"Hormone balance", "Reduced cravings", "Better mood"},
	},
}

// Phases lists the four cycle phases in cycle order.
func Phases() []model.CyclePhaseInfo {
	out := make([]model.CyclePhaseInfo, 0, len(order))
	for _, p := range order {
		out = append(out, Info(p))
	}
	return out
}

// Info returns the table entry for p. Unknown phases fall back to the default.
func Info(p model.CyclePhase) model.CyclePhaseInfo {
	info, ok := table[p]
	if !ok {
		info = table[model.DefaultCyclePhase]
	}
	info.Tips = append([]string(nil), info.Tips...)
	info.Benefits = append([]string(nil), info.Benefits...)
	return info
}

func ParsePhase(raw string) (model.CyclePhase, error) {
	p := model.CyclePhase(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := table[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, raw)
	}
	return p, nil
}

// EffectiveTargetHours is the fasting target for a selection. Custom hours are
// returned verbatim; they are range-checked by ValidateCustomHours on entry.
func EffectiveTargetHours(sel model.CycleSelection) float64 {
	if sel.CustomHours != nil {
		return *sel.CustomHours
	}
	return Info(sel.SelectedPhase).RecommendedHours
}

func ValidateCustomHours(hours float64) error {
	if math.IsNaN(hours) || hours < MinCustomHours || hours > MaxCustomHours {
		return ErrInvalidCustomHours
	}
	return nil
}
