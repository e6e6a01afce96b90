package service

import (
	"fasting/backend/internal/cycle"
	"fasting/backend/internal/fasting"
	"fasting/backend/internal/model"
	"fasting/backend/internal/presentation"
)

type PhaseView struct {
	model.FastingPhase
	Style          presentation.Style `json:"style"`
	IntensityColor string             `json:"intensityColor"`
}

type CyclePhaseView struct {
	model.CyclePhaseInfo
	Style presentation.Style `json:"style"`
}

type RecordView struct {
	model.FastingRecord
	Color string `json:"color"`
}

type ResolvedPhase struct {
	Hours     float64    `json:"hours"`
	Phase     PhaseView  `json:"phase"`
	NextPhase *PhaseView `json:"nextPhase,omitempty"`
	Progress  float64    `json:"progress"`
}

func newPhaseView(p model.FastingPhase) PhaseView {
	return PhaseView{
		FastingPhase:   p,
		Style:          presentation.PhaseStyle(p.Hour),
		IntensityColor: presentation.IntensityColor(p.Intensity),
	}
}

func newCyclePhaseView(info model.CyclePhaseInfo) CyclePhaseView {
	return CyclePhaseView{CyclePhaseInfo: info, Style: presentation.CycleStyle(info.Phase)}
}

func newRecordView(r model.FastingRecord) RecordView {
	return RecordView{FastingRecord: r, Color: presentation.HoursColor(r.Hours)}
}

func newRecordViews(records []model.FastingRecord) []RecordView {
	views := make([]RecordView, 0, len(records))
	for _, r := range records {
		views = append(views, newRecordView(r))
	}
	return views
}

// PhaseTimeline lists every fasting phase with its display style.
func PhaseTimeline() []PhaseView {
	table := fasting.Phases()
	views := make([]PhaseView, 0, len(table))
	for _, p := range table {
		views = append(views, newPhaseView(p))
	}
	return views
}

func ResolvePhase(hours float64) ResolvedPhase {
	resolved := ResolvedPhase{
		Hours:    hours,
		Phase:    newPhaseView(fasting.Resolve(hours)),
		Progress: fasting.Progress(hours),
	}
	if next, ok := fasting.Next(hours); ok {
		view := newPhaseView(next)
		resolved.NextPhase = &view
	}
	return resolved
}

func cyclePhaseViews() []CyclePhaseView {
	infos := cycle.Phases()
	views := make([]CyclePhaseView, 0, len(infos))
	for _, info := range infos {
		views = append(views, newCyclePhaseView(info))
	}
	return views
}
