package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fasting/backend/internal/model"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT user_id, selected_phase, custom_hours, reminders_enabled, updated_at
		 FROM user_settings WHERE user_id = ?`,
		userID,
	)

	var settings model.UserSettings
	var phase string
	var customHours sql.NullFloat64
	var updatedAt string
	if err := row.Scan(&settings.UserID, &phase, &customHours, &settings.RemindersEnabled, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan settings: %w", err)
	}

	settings.SelectedPhase = model.CyclePhase(phase)
	if customHours.Valid {
		value := customHours.Float64
		settings.CustomHours = &value
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse settings updated_at: %w", err)
	}
	settings.UpdatedAt = parsedUpdatedAt
	return &settings, nil
}

// Save inserts or replaces the settings row of settings.UserID.
func (r *SettingsRepository) Save(ctx context.Context, settings *model.UserSettings) error {
	var customHours interface{}
	if settings.CustomHours != nil {
		customHours = *settings.CustomHours
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_settings (user_id, selected_phase, custom_hours, reminders_enabled, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		     selected_phase = excluded.selected_phase,
		     custom_hours = excluded.custom_hours,
		     reminders_enabled = excluded.reminders_enabled,
		     updated_at = excluded.updated_at`,
		settings.UserID,
		string(settings.SelectedPhase),
		customHours,
		settings.RemindersEnabled,
		formatTime(settings.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
