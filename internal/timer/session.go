package timer

import "time"

// Session tracks the elapsed time of one fast across start/pause cycles.
// Elapsed time is derived from the clock, so it survives missed ticks.
type Session struct {
	Active             bool
	AccumulatedSeconds int64
	RunStartedAt       *time.Time
	StartedAt          *time.Time
}

// Start resumes or begins the fast. StartedAt is set on the first start only.
func (s *Session) Start(now time.Time) {
	if s.Active {
		return
	}
	if s.StartedAt == nil {
		started := now
		s.StartedAt = &started
	}
	run := now
	s.RunStartedAt = &run
	s.Active = true
}

// Pause banks the running segment and stops the clock.
func (s *Session) Pause(now time.Time) {
	if !s.Active {
		return
	}
	s.AccumulatedSeconds = s.ElapsedSeconds(now)
	s.RunStartedAt = nil
	s.Active = false
}

func (s *Session) Reset() {
	*s = Session{}
}

func (s *Session) ElapsedSeconds(now time.Time) int64 {
	elapsed := s.AccumulatedSeconds
	if s.Active && s.RunStartedAt != nil {
		if run := int64(now.Sub(*s.RunStartedAt) / time.Second); run > 0 {
			elapsed += run
		}
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (s *Session) ElapsedHours(now time.Time) float64 {
	return float64(s.ElapsedSeconds(now)) / 3600
}
