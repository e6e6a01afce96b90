package model

import "time"

type CyclePhase string

const (
	CycleMenstrual  CyclePhase = "menstrual"
	CycleFollicular CyclePhase = "follicular"
	CycleOvulation  CyclePhase = "ovulation"
	CycleLuteal     CyclePhase = "luteal"
)

const DefaultCyclePhase = CycleFollicular

type CyclePhaseInfo struct {
	Phase            CyclePhase `json:"phase"`
	Name             string     `json:"name"`
	DayRange         string     `json:"dayRange"`
	RecommendedHours float64    `json:"recommendedHours"`
	FastingWindow    string     `json:"fastingWindow"`
	Description      string     `json:"description"`
	Tips             []string   `json:"tips"`
	Benefits         []string   `json:"benefits"`
}

// CycleSelection is the user's chosen cycle phase and optional override.
// A non-nil CustomHours wins over the phase recommendation.
type CycleSelection struct {
	SelectedPhase CyclePhase `json:"selectedPhase"`
	CustomHours   *float64   `json:"customHours"`
}

type UserSettings struct {
	UserID           string     `json:"userId"`
	SelectedPhase    CyclePhase `json:"selectedPhase"`
	CustomHours      *float64   `json:"customHours"`
	RemindersEnabled bool       `json:"remindersEnabled"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func DefaultUserSettings(userID string, now time.Time) *UserSettings {
	return &UserSettings{
		UserID:           userID,
		SelectedPhase:    DefaultCyclePhase,
		RemindersEnabled: true,
		UpdatedAt:        now,
	}
}

func (s *UserSettings) Selection() CycleSelection {
	return CycleSelection{
		SelectedPhase: s.SelectedPhase,
		CustomHours:   s.CustomHours,
	}
}
