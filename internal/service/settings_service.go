package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fasting/backend/internal/cycle"
	apperrors "fasting/backend/internal/errors"
	"fasting/backend/internal/model"
	"fasting/backend/internal/repository"
)

// SettingsService owns the cycle selection, the custom-hours override and the
// reminder toggle of each user.
type SettingsService struct {
	repo   *repository.SettingsRepository
	logger *slog.Logger
	now    func() time.Time
}

type CycleView struct {
	Selection          model.CycleSelection `json:"selection"`
	Current            CyclePhaseView       `json:"current"`
	Phases             []CyclePhaseView     `json:"phases"`
	EffectiveHours     float64              `json:"effectiveHours"`
	IsUsingCustomTimer bool                 `json:"isUsingCustomTimer"`
	RemindersEnabled   bool                 `json:"remindersEnabled"`
}

type CustomHoursInput struct {
	CustomHours *float64 `json:"customHours"`
}

func NewSettingsService(repo *repository.SettingsRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger, now: time.Now}
}

func (s *SettingsService) GetCycle(ctx context.Context, userID string) (*CycleView, *apperrors.APIError) {
	settings, apiErr := s.load(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	view := toCycleView(settings)
	return &view, nil
}

func (s *SettingsService) SetPhase(ctx context.Context, userID, rawPhase string) (*CycleView, *apperrors.APIError) {
	phase, err := cycle.ParsePhase(rawPhase)
	if err != nil {
		return nil, apperrors.BadRequest("invalid_phase", "phase must be one of menstrual, follicular, ovulation, luteal")
	}

	return s.update(ctx, userID, func(settings *model.UserSettings) {
		settings.SelectedPhase = phase
	})
}

// SetCustomHours sets the override, or clears it when input.CustomHours is nil.
func (s *SettingsService) SetCustomHours(ctx context.Context, userID string, input CustomHoursInput) (*CycleView, *apperrors.APIError) {
	if input.CustomHours != nil {
		if err := cycle.ValidateCustomHours(*input.CustomHours); err != nil {
			return nil, apperrors.BadRequest("invalid_custom_hours", "please enter a valid number between 8 and 24 hours")
		}
	}

	return s.update(ctx, userID, func(settings *model.UserSettings) {
		settings.CustomHours = input.CustomHours
	})
}

func (s *SettingsService) SetReminders(ctx context.Context, userID string, enabled bool) (*CycleView, *apperrors.APIError) {
	return s.update(ctx, userID, func(settings *model.UserSettings) {
		settings.RemindersEnabled = enabled
	})
}

func (s *SettingsService) Reset(ctx context.Context, userID string) *apperrors.APIError {
	if err := s.repo.Save(ctx, model.DefaultUserSettings(userID, s.now().UTC())); err != nil {
		return apperrors.Internal("failed to reset settings")
	}
	return nil
}

func (s *SettingsService) update(ctx context.Context, userID string, apply func(*model.UserSettings)) (*CycleView, *apperrors.APIError) {
	settings, apiErr := s.load(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	apply(settings)
	settings.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, apperrors.Internal("failed to save settings")
	}

	s.logger.Info("cycle settings updated",
		"user_id", userID,
		"phase", settings.SelectedPhase,
		"custom", settings.CustomHours != nil,
		"reminders", settings.RemindersEnabled,
	)
	view := toCycleView(settings)
	return &view, nil
}

// load returns stored settings or the defaults for users without a row.
func (s *SettingsService) load(ctx context.Context, userID string) (*model.UserSettings, *apperrors.APIError) {
	settings, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.DefaultUserSettings(userID, s.now().UTC()), nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get settings")
	}
	return settings, nil
}

func toCycleView(settings *model.UserSettings) CycleView {
	selection := settings.Selection()
	return CycleView{
		Selection:          selection,
		Current:            newCyclePhaseView(cycle.Info(selection.SelectedPhase)),
		Phases:             cyclePhaseViews(),
		EffectiveHours:     cycle.EffectiveTargetHours(selection),
		IsUsingCustomTimer: selection.CustomHours != nil,
		RemindersEnabled:   settings.RemindersEnabled,
	}
}
