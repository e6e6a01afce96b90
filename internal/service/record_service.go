package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "fasting/backend/internal/errors"
	"fasting/backend/internal/metrics"
	"fasting/backend/internal/model"
	"fasting/backend/internal/progress"
	"fasting/backend/internal/record"
	"fasting/backend/internal/repository"
)

type RecordService struct {
	repo   *repository.RecordRepository
	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
}

type RecordInput struct {
	Hours     *float64 `json:"hours" validate:"required"`
	StartTime string   `json:"startTime" validate:"max=32"`
	EndTime   string   `json:"endTime" validate:"max=32"`
	Notes     string   `json:"notes" validate:"max=500"`
	Completed bool     `json:"completed"`
}

type PatchRecordInput struct {
	Hours     *float64 `json:"hours"`
	StartTime *string  `json:"startTime" validate:"omitempty,max=32"`
	EndTime   *string  `json:"endTime" validate:"omitempty,max=32"`
	Notes     *string  `json:"notes" validate:"omitempty,max=500"`
	Completed *bool    `json:"completed"`
}

// MonthFilter narrows listings and summaries to one calendar month.
type MonthFilter struct {
	Year  int
	Month int
}

func NewRecordService(repo *repository.RecordRepository, loc *time.Location, logger *slog.Logger) *RecordService {
	if loc == nil {
		loc = time.UTC
	}
	return &RecordService{repo: repo, loc: loc, logger: logger, now: time.Now}
}

func (s *RecordService) List(ctx context.Context, userID string, filter *MonthFilter) ([]RecordView, *apperrors.APIError) {
	if apiErr := validateFilter(filter); apiErr != nil {
		return nil, apiErr
	}
	store, apiErr := s.loadStore(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	if filter != nil {
		return newRecordViews(store.FindByMonth(filter.Year, filter.Month)), nil
	}
	return newRecordViews(store.All()), nil
}

func (s *RecordService) Get(ctx context.Context, userID, date string) (*RecordView, *apperrors.APIError) {
	if err := record.ValidateDate(date); err != nil {
		return nil, apperrors.BadRequest("invalid_date", err.Error())
	}
	store, apiErr := s.loadStore(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	found, ok := store.Find(date)
	if !ok {
		return nil, apperrors.NotFound("record_not_found", "no fasting record for "+date)
	}
	view := newRecordView(found)
	return &view, nil
}

func (s *RecordService) Upsert(ctx context.Context, userID, date string, input RecordInput) (*RecordView, *apperrors.APIError) {
	if err := record.ValidateDate(date); err != nil {
		return nil, apperrors.BadRequest("invalid_date", err.Error())
	}
	if apiErr := validateInput(input); apiErr != nil {
		return nil, apiErr
	}
	if err := record.ValidateHours(*input.Hours); err != nil {
		return nil, apperrors.BadRequest("invalid_hours", err.Error())
	}

	rec := model.FastingRecord{
		Date:      date,
		Hours:     *input.Hours,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Notes:     input.Notes,
		Completed: input.Completed,
	}
	if apiErr := s.save(ctx, userID, rec, "upsert"); apiErr != nil {
		return nil, apiErr
	}
	view := newRecordView(rec)
	return &view, nil
}

func (s *RecordService) Patch(ctx context.Context, userID, date string, input PatchRecordInput) (*RecordView, *apperrors.APIError) {
	if err := record.ValidateDate(date); err != nil {
		return nil, apperrors.BadRequest("invalid_date", err.Error())
	}
	if apiErr := validateInput(input); apiErr != nil {
		return nil, apiErr
	}
	if input.Hours != nil {
		if err := record.ValidateHours(*input.Hours); err != nil {
			return nil, apperrors.BadRequest("invalid_hours", err.Error())
		}
	}

	store, apiErr := s.loadStore(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	updated, err := store.Patch(date, model.RecordPatch{
		Hours:     input.Hours,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Notes:     input.Notes,
		Completed: input.Completed,
	})
	if errors.Is(err, record.ErrNotFound) {
		return nil, apperrors.NotFound("record_not_found", "no fasting record for "+date)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update record")
	}
	if apiErr := s.save(ctx, userID, updated, "patch"); apiErr != nil {
		return nil, apiErr
	}
	view := newRecordView(updated)
	return &view, nil
}

func (s *RecordService) Delete(ctx context.Context, userID, date string) *apperrors.APIError {
	if err := record.ValidateDate(date); err != nil {
		return apperrors.BadRequest("invalid_date", err.Error())
	}
	store, apiErr := s.loadStore(ctx, userID)
	if apiErr != nil {
		return apiErr
	}
	if !store.Remove(date) {
		return apperrors.NotFound("record_not_found", "no fasting record for "+date)
	}
	if err := s.repo.Delete(ctx, userID, date); err != nil {
		return apperrors.Internal("failed to delete record")
	}
	metrics.RecordWrites.WithLabelValues("delete").Inc()
	return nil
}

// Summary aggregates the filtered records. Streaks always span the full
// history so a month view still shows the running streak.
func (s *RecordService) Summary(ctx context.Context, userID string, filter *MonthFilter) (*progress.Summary, *apperrors.APIError) {
	if apiErr := validateFilter(filter); apiErr != nil {
		return nil, apiErr
	}
	store, apiErr := s.loadStore(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	all := store.All()
	today := s.today()
	summary := progress.Summarize(all, today)
	if filter != nil {
		scoped := progress.Summarize(store.FindByMonth(filter.Year, filter.Month), today)
		scoped.CurrentStreak = summary.CurrentStreak
		scoped.LongestStreak = summary.LongestStreak
		summary = scoped
	}
	return &summary, nil
}

func (s *RecordService) Week(ctx context.Context, userID string) ([]progress.DayStatus, *apperrors.APIError) {
	store, apiErr := s.loadStore(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	return progress.Week(store.All(), s.today()), nil
}

func (s *RecordService) All(ctx context.Context, userID string) ([]model.FastingRecord, *apperrors.APIError) {
	store, apiErr := s.loadStore(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	return store.All(), nil
}

func (s *RecordService) Reset(ctx context.Context, userID string) *apperrors.APIError {
	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return apperrors.Internal("failed to delete records")
	}
	metrics.RecordWrites.WithLabelValues("reset").Inc()
	return nil
}

// Log stores the record produced by a finished fast.
func (s *RecordService) Log(ctx context.Context, userID string, rec model.FastingRecord) *apperrors.APIError {
	return s.save(ctx, userID, rec, "finish")
}

func (s *RecordService) save(ctx context.Context, userID string, rec model.FastingRecord, op string) *apperrors.APIError {
	if err := s.repo.Upsert(ctx, userID, rec); err != nil {
		return apperrors.Internal("failed to save record")
	}
	metrics.RecordWrites.WithLabelValues(op).Inc()
	s.logger.Debug("fasting record saved", "user_id", userID, "date", rec.Date, "op", op)
	return nil
}

func (s *RecordService) loadStore(ctx context.Context, userID string) (*record.Store, *apperrors.APIError) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list records")
	}
	return record.NewStore(records...), nil
}

func (s *RecordService) today() time.Time {
	return s.now().In(s.loc)
}

func validateFilter(filter *MonthFilter) *apperrors.APIError {
	if filter == nil {
		return nil
	}
	if filter.Year < 1 || filter.Year > 9999 || filter.Month < 1 || filter.Month > 12 {
		return apperrors.BadRequest("invalid_month", "year and month must form a valid calendar month")
	}
	return nil
}
