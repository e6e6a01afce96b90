package timer

import "fasting/backend/internal/model"

func FromState(state *model.FastingState) Session {
	return Session{
		Active:             state.Status == model.StatusRunning,
		AccumulatedSeconds: state.AccumulatedSeconds,
		RunStartedAt:       state.RunStartedAt,
		StartedAt:          state.StartedAt,
	}
}

// ApplyTo copies the session onto a persisted state and derives its status.
func (s Session) ApplyTo(state *model.FastingState) {
	state.AccumulatedSeconds = s.AccumulatedSeconds
	state.RunStartedAt = s.RunStartedAt
	state.StartedAt = s.StartedAt

	switch {
	case s.Active:
		state.Status = model.StatusRunning
	case s.StartedAt != nil:
		state.Status = model.StatusPaused
	default:
		state.Status = model.StatusIdle
	}
}
