package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fasting/backend/internal/model"
)

// FastingStateStore persists the timer of each user's current fast.
type FastingStateStore interface {
	Get(ctx context.Context, userID string) (*model.FastingState, error)
	Save(ctx context.Context, state *model.FastingState) error
	ListRunning(ctx context.Context) ([]model.FastingState, error)
}

// SQLiteFastingStateStore keeps timer state across restarts.
type SQLiteFastingStateStore struct {
	db *sql.DB
}

func NewSQLiteFastingStateStore(db *sql.DB) *SQLiteFastingStateStore {
	return &SQLiteFastingStateStore{db: db}
}

func (r *SQLiteFastingStateStore) Get(ctx context.Context, userID string) (*model.FastingState, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT user_id, status, accumulated_seconds, run_started_at, started_at,
		        reminder_sent_at, version, updated_at
		 FROM fasting_states WHERE user_id = ?`,
		userID,
	)
	return scanFastingState(row)
}

func (r *SQLiteFastingStateStore) Save(ctx context.Context, state *model.FastingState) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO fasting_states (
			user_id, status, accumulated_seconds, run_started_at, started_at,
			reminder_sent_at, version, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			status = excluded.status,
			accumulated_seconds = excluded.accumulated_seconds,
			run_started_at = excluded.run_started_at,
			started_at = excluded.started_at,
			reminder_sent_at = excluded.reminder_sent_at,
			version = excluded.version,
			updated_at = excluded.updated_at`,
		state.UserID,
		state.Status,
		state.AccumulatedSeconds,
		formatNullTime(state.RunStartedAt),
		formatNullTime(state.StartedAt),
		formatNullTime(state.ReminderSentAt),
		state.Version,
		formatTime(state.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save fasting state: %w", err)
	}
	return nil
}

func (r *SQLiteFastingStateStore) ListRunning(ctx context.Context) ([]model.FastingState, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT user_id, status, accumulated_seconds, run_started_at, started_at,
		        reminder_sent_at, version, updated_at
		 FROM fasting_states WHERE status = ?`,
		model.StatusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("list running states: %w", err)
	}
	defer rows.Close()

	states := make([]model.FastingState, 0)
	for rows.Next() {
		state, scanErr := scanFastingState(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		states = append(states, *state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate running states: %w", err)
	}
	return states, nil
}

func scanFastingState(s scanner) (*model.FastingState, error) {
	state := model.FastingState{}
	var runStartedAt, startedAt, reminderSentAt sql.NullString
	var updatedAt string
	err := s.Scan(
		&state.UserID,
		&state.Status,
		&state.AccumulatedSeconds,
		&runStartedAt,
		&startedAt,
		&reminderSentAt,
		&state.Version,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan fasting state: %w", err)
	}

	if state.RunStartedAt, err = parseNullTime(runStartedAt); err != nil {
		return nil, fmt.Errorf("parse state run_started_at: %w", err)
	}
	if state.StartedAt, err = parseNullTime(startedAt); err != nil {
		return nil, fmt.Errorf("parse state started_at: %w", err)
	}
	if state.ReminderSentAt, err = parseNullTime(reminderSentAt); err != nil {
		return nil, fmt.Errorf("parse state reminder_sent_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse state updated_at: %w", err)
	}
	state.UpdatedAt = parsedUpdatedAt
	return &state, nil
}
