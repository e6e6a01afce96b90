package fasting

import (
	"math"
	"sort"

	"fasting/backend/internal/model"
)

// Resolve returns the most recently entered phase: the entry with the greatest
// hour not above elapsedHours. Inputs below the first hour map to the first entry.
func Resolve(elapsedHours float64) model.FastingPhase {
	return clonePhase(phases[currentIndex(elapsedHours)])
}

// Next returns the first phase whose hour is strictly greater than elapsedHours.
func Next(elapsedHours float64) (model.FastingPhase, bool) {
	idx := nextIndex(elapsedHours)
	if idx == len(phases) {
		return model.FastingPhase{}, false
	}
	return clonePhase(phases[idx]), true
}

// Progress is the percentage in [0,100] covered between the current phase and
// the next one. Past the last phase it is 100.
func Progress(elapsedHours float64) float64 {
	if math.IsNaN(elapsedHours) {
		return 0
	}
	idx := nextIndex(elapsedHours)
	if idx == len(phases) {
		return 100
	}
	current := phases[currentIndex(elapsedHours)]
	next := phases[idx]

	pct := (elapsedHours - float64(current.Hour)) / float64(next.Hour-current.Hour) * 100
	return math.Min(math.Max(pct, 0), 100)
}

func nextIndex(elapsedHours float64) int {
	if math.IsNaN(elapsedHours) {
		return 1
	}
	return sort.Search(len(phases), func(i int) bool {
		return float64(phases[i].Hour) > elapsedHours
	})
}

func currentIndex(elapsedHours float64) int {
	idx := nextIndex(elapsedHours) - 1
	if idx < 0 {
		return 0
	}
	return idx
}
