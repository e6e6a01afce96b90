package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"fasting/backend/internal/cycle"
	apperrors "fasting/backend/internal/errors"
	"fasting/backend/internal/metrics"
	"fasting/backend/internal/model"
	"fasting/backend/internal/record"
	"fasting/backend/internal/repository"
	"fasting/backend/internal/timer"
)

const clockLayout = "15:04"

// FastingService drives the per-user fasting timer. Every transition is a
// read-modify-write of the stored state, serialized by mu.
type FastingService struct {
	mu       sync.Mutex
	states   repository.FastingStateStore
	settings *SettingsService
	records  *RecordService
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

type StateView struct {
	UserID           string        `json:"userId"`
	Status           string        `json:"status"`
	ElapsedSeconds   int64         `json:"elapsedSeconds"`
	ElapsedHours     float64       `json:"elapsedHours"`
	Phase            ResolvedPhase `json:"phase"`
	TargetHours      float64       `json:"targetHours"`
	TargetProgress   float64       `json:"targetProgress"`
	RemainingSeconds int64         `json:"remainingSeconds"`
	TargetReached    bool          `json:"targetReached"`
	StartedAt        *time.Time    `json:"startedAt,omitempty"`
	Version          int           `json:"version"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	ServerTime       time.Time     `json:"serverTime"`
}

type FinishResult struct {
	State  StateView  `json:"state"`
	Record RecordView `json:"record"`
}

// DueReminder is a running fast that has just reached its target.
type DueReminder struct {
	UserID       string
	TargetHours  float64
	ElapsedHours float64
}

func NewFastingService(
	states repository.FastingStateStore,
	settings *SettingsService,
	records *RecordService,
	loc *time.Location,
	logger *slog.Logger,
) *FastingService {
	if loc == nil {
		loc = time.UTC
	}
	return &FastingService{
		states:   states,
		settings: settings,
		records:  records,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *FastingService) GetState(ctx context.Context, userID string) (*StateView, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	state, apiErr := s.loadState(ctx, userID, now)
	if apiErr != nil {
		return nil, apiErr
	}
	return s.viewFor(ctx, state, now)
}

func (s *FastingService) Start(ctx context.Context, userID string, baseVersion int) (*StateView, *apperrors.APIError) {
	return s.transition(ctx, userID, baseVersion, func(state *model.FastingState, now time.Time) bool {
		if state.Status == model.StatusRunning {
			return false
		}
		fresh := state.Status == model.StatusIdle
		session := timer.FromState(state)
		session.Start(now)
		session.ApplyTo(state)
		if fresh {
			state.ReminderSentAt = nil
			metrics.FastsStarted.Inc()
			s.logger.Info("fast started", "user_id", userID)
		}
		return true
	})
}

func (s *FastingService) Pause(ctx context.Context, userID string, baseVersion int) (*StateView, *apperrors.APIError) {
	return s.transition(ctx, userID, baseVersion, func(state *model.FastingState, now time.Time) bool {
		if state.Status != model.StatusRunning {
			return false
		}
		session := timer.FromState(state)
		session.Pause(now)
		session.ApplyTo(state)
		s.logger.Info("fast paused", "user_id", userID, "elapsed_seconds", state.AccumulatedSeconds)
		return true
	})
}

func (s *FastingService) Reset(ctx context.Context, userID string, baseVersion int) (*StateView, *apperrors.APIError) {
	return s.transition(ctx, userID, baseVersion, func(state *model.FastingState, _ time.Time) bool {
		if state.Status == model.StatusIdle {
			return false
		}
		resetState(state)
		s.logger.Info("fast reset", "user_id", userID)
		return true
	})
}

// Finish stops the fast and logs it as the record of the day it started on.
func (s *FastingService) Finish(ctx context.Context, userID string, baseVersion int) (*FinishResult, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	state, apiErr := s.loadState(ctx, userID, now)
	if apiErr != nil {
		return nil, apiErr
	}
	if apiErr := s.ensureVersion(ctx, baseVersion, state, now); apiErr != nil {
		return nil, apiErr
	}
	if state.StartedAt == nil {
		return nil, apperrors.BadRequest("no_active_fast", "there is no fast to finish")
	}

	targetHours, apiErr := s.targetHours(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	session := timer.FromState(state)
	elapsed := session.ElapsedSeconds(now)
	rec := finishedRecord(*state.StartedAt, now, elapsed, targetHours, s.loc)

	// The timer is stopped first; a failed record write puts the running
	// state back so the fast can be finished again.
	previous := *state
	resetState(state)
	state.UpdatedAt = now
	state.Version++
	if err := s.states.Save(ctx, state); err != nil {
		return nil, apperrors.Internal("failed to update state")
	}
	if apiErr := s.records.Log(ctx, userID, rec); apiErr != nil {
		if err := s.states.Save(ctx, &previous); err != nil {
			s.logger.Error("failed to restore fasting state", "user_id", userID, "error", err)
		}
		return nil, apiErr
	}

	metrics.FastsFinished.WithLabelValues(strconv.FormatBool(rec.Completed)).Inc()
	s.logger.Info("fast finished",
		"user_id", userID,
		"date", rec.Date,
		"hours", rec.Hours,
		"completed", rec.Completed,
	)

	view, apiErr := s.viewFor(ctx, state, now)
	if apiErr != nil {
		return nil, apiErr
	}
	return &FinishResult{State: *view, Record: newRecordView(rec)}, nil
}

// IsRunning reports whether the user's fast is currently running.
func (s *FastingService) IsRunning(ctx context.Context, userID string) bool {
	state, err := s.states.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false
	}
	if err != nil {
		s.logger.Warn("failed to read fasting state", "user_id", userID, "error", err)
		return false
	}
	return state.Status == model.StatusRunning
}

// CollectDueReminders marks every running fast that reached its target since
// the last sweep and returns them. Each fast is reported at most once.
func (s *FastingService) CollectDueReminders(ctx context.Context, now time.Time) ([]DueReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	running, err := s.states.ListRunning(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]DueReminder, 0)
	for i := range running {
		state := &running[i]
		if state.ReminderSentAt != nil {
			continue
		}
		settings, apiErr := s.settings.load(ctx, state.UserID)
		if apiErr != nil {
			return due, apiErr
		}
		if !settings.RemindersEnabled {
			continue
		}

		target := cycle.EffectiveTargetHours(settings.Selection())
		session := timer.FromState(state)
		if float64(session.ElapsedSeconds(now)) < target*3600 {
			continue
		}

		sentAt := now.UTC()
		state.ReminderSentAt = &sentAt
		if err := s.states.Save(ctx, state); err != nil {
			return due, err
		}
		due = append(due, DueReminder{
			UserID:       state.UserID,
			TargetHours:  target,
			ElapsedHours: session.ElapsedHours(now),
		})
	}
	return due, nil
}

// ResetState returns the user's timer to idle regardless of its version.
func (s *FastingService) ResetState(ctx context.Context, userID string) *apperrors.APIError {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	state, apiErr := s.loadState(ctx, userID, now)
	if apiErr != nil {
		return apiErr
	}
	resetState(state)
	state.UpdatedAt = now
	state.Version++
	if err := s.states.Save(ctx, state); err != nil {
		return apperrors.Internal("failed to update state")
	}
	return nil
}

func (s *FastingService) transition(
	ctx context.Context,
	userID string,
	baseVersion int,
	apply func(state *model.FastingState, now time.Time) bool,
) (*StateView, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	state, apiErr := s.loadState(ctx, userID, now)
	if apiErr != nil {
		return nil, apiErr
	}
	if apiErr := s.ensureVersion(ctx, baseVersion, state, now); apiErr != nil {
		return nil, apiErr
	}

	if apply(state, now) {
		state.UpdatedAt = now
		state.Version++
		if err := s.states.Save(ctx, state); err != nil {
			return nil, apperrors.Internal("failed to update state")
		}
	}
	return s.viewFor(ctx, state, now)
}

// loadState returns the stored state, creating an idle one on first use.
func (s *FastingService) loadState(ctx context.Context, userID string, now time.Time) (*model.FastingState, *apperrors.APIError) {
	state, err := s.states.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		state = model.NewFastingState(userID, now)
		if saveErr := s.states.Save(ctx, state); saveErr != nil {
			return nil, apperrors.Internal("failed to initialize state")
		}
		return state, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get state")
	}
	return state, nil
}

func (s *FastingService) ensureVersion(ctx context.Context, baseVersion int, state *model.FastingState, now time.Time) *apperrors.APIError {
	if baseVersion <= 0 || baseVersion == state.Version {
		return nil
	}
	view, apiErr := s.viewFor(ctx, state, now)
	if apiErr != nil {
		return apiErr
	}
	return apperrors.Conflict("state_conflict", "state changed on another device", map[string]interface{}{
		"state": view,
	})
}

func (s *FastingService) targetHours(ctx context.Context, userID string) (float64, *apperrors.APIError) {
	settings, apiErr := s.settings.load(ctx, userID)
	if apiErr != nil {
		return 0, apiErr
	}
	return cycle.EffectiveTargetHours(settings.Selection()), nil
}

func (s *FastingService) viewFor(ctx context.Context, state *model.FastingState, now time.Time) (*StateView, *apperrors.APIError) {
	targetHours, apiErr := s.targetHours(ctx, state.UserID)
	if apiErr != nil {
		return nil, apiErr
	}
	view := toStateView(state, targetHours, now)
	return &view, nil
}

func toStateView(state *model.FastingState, targetHours float64, now time.Time) StateView {
	session := timer.FromState(state)
	elapsed := session.ElapsedSeconds(now)
	elapsedHours := session.ElapsedHours(now)
	targetSeconds := int64(math.Round(targetHours * 3600))

	remaining := targetSeconds - elapsed
	if remaining < 0 {
		remaining = 0
	}
	targetProgress := 0.0
	if targetSeconds > 0 {
		targetProgress = math.Min(100, float64(elapsed)/float64(targetSeconds)*100)
	}

	return StateView{
		UserID:           state.UserID,
		Status:           state.Status,
		ElapsedSeconds:   elapsed,
		ElapsedHours:     elapsedHours,
		Phase:            ResolvePhase(elapsedHours),
		TargetHours:      targetHours,
		TargetProgress:   math.Round(targetProgress*10) / 10,
		RemainingSeconds: remaining,
		TargetReached:    targetSeconds > 0 && elapsed >= targetSeconds,
		StartedAt:        state.StartedAt,
		Version:          state.Version,
		UpdatedAt:        state.UpdatedAt,
		ServerTime:       now,
	}
}

func finishedRecord(startedAt, now time.Time, elapsedSeconds int64, targetHours float64, loc *time.Location) model.FastingRecord {
	hours := math.Min(math.Round(float64(elapsedSeconds)/3600*10)/10, 24)
	start := startedAt.In(loc)
	return model.FastingRecord{
		Date:      record.FormatDate(start),
		Hours:     hours,
		StartTime: start.Format(clockLayout),
		EndTime:   now.In(loc).Format(clockLayout),
		Completed: float64(elapsedSeconds) >= targetHours*3600,
	}
}

func resetState(state *model.FastingState) {
	session := timer.FromState(state)
	session.Reset()
	session.ApplyTo(state)
	state.ReminderSentAt = nil
}
