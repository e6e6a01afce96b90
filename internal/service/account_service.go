package service

import (
	"context"
	"log/slog"
	"time"

	apperrors "fasting/backend/internal/errors"
	"fasting/backend/internal/model"
)

// AccountService bundles the per-user data operations that span every store.
type AccountService struct {
	auth     *AuthService
	settings *SettingsService
	records  *RecordService
	fasting  *FastingService
	logger   *slog.Logger
}

type ExportView struct {
	ExportedAt time.Time             `json:"exportedAt"`
	User       model.User            `json:"user"`
	Cycle      CycleView             `json:"cycle"`
	Records    []model.FastingRecord `json:"records"`
}

func NewAccountService(auth *AuthService, settings *SettingsService, records *RecordService, fasting *FastingService, logger *slog.Logger) *AccountService {
	return &AccountService{
		auth:     auth,
		settings: settings,
		records:  records,
		fasting:  fasting,
		logger:   logger,
	}
}

func (s *AccountService) Export(ctx context.Context, userID string) (*ExportView, *apperrors.APIError) {
	user, apiErr := s.auth.Me(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	cycleView, apiErr := s.settings.GetCycle(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	records, apiErr := s.records.All(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	return &ExportView{
		ExportedAt: time.Now().UTC(),
		User:       *user,
		Cycle:      *cycleView,
		Records:    records,
	}, nil
}

// ResetData clears records, settings and the timer. The account itself stays.
func (s *AccountService) ResetData(ctx context.Context, userID string) *apperrors.APIError {
	if apiErr := s.records.Reset(ctx, userID); apiErr != nil {
		return apiErr
	}
	if apiErr := s.settings.Reset(ctx, userID); apiErr != nil {
		return apiErr
	}
	if apiErr := s.fasting.ResetState(ctx, userID); apiErr != nil {
		return apiErr
	}
	s.logger.Info("user data reset", "user_id", userID)
	return nil
}
