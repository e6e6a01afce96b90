package model

import "time"

const (
	StatusIdle    = "idle"
	StatusRunning = "running"
	StatusPaused  = "paused"
)

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// FastingPhase is one step of the physiological fasting timeline, entered
// once Hour hours have elapsed.
type FastingPhase struct {
	Hour        int       `json:"hour"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Benefits    []string  `json:"benefits"`
	Intensity   Intensity `json:"intensity"`
}

// FastingState is the persisted timer of a user's current fast.
// Elapsed time is AccumulatedSeconds plus the running segment since RunStartedAt.
type FastingState struct {
	UserID             string     `json:"userId"`
	Status             string     `json:"status"`
	AccumulatedSeconds int64      `json:"accumulatedSeconds"`
	RunStartedAt       *time.Time `json:"runStartedAt,omitempty"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	ReminderSentAt     *time.Time `json:"reminderSentAt,omitempty"`
	Version            int        `json:"version"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func NewFastingState(userID string, now time.Time) *FastingState {
	return &FastingState{
		UserID:    userID,
		Status:    StatusIdle,
		Version:   1,
		UpdatedAt: now,
	}
}
