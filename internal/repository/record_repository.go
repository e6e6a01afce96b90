package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fasting/backend/internal/model"
)

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) ListByUser(ctx context.Context, userID string) ([]model.FastingRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT date, hours, start_time, end_time, notes, completed
		 FROM fasting_records
		 WHERE user_id = ?
		 ORDER BY date ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]model.FastingRecord, 0)
	for rows.Next() {
		var rec model.FastingRecord
		var startTime, endTime, notes sql.NullString
		if err := rows.Scan(&rec.Date, &rec.Hours, &startTime, &endTime, &notes, &rec.Completed); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.StartTime = startTime.String
		rec.EndTime = endTime.String
		rec.Notes = notes.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (r *RecordRepository) Upsert(ctx context.Context, userID string, rec model.FastingRecord) error {
	return upsertRecord(ctx, r.db, userID, rec, time.Now().UTC())
}

// UpsertMany writes all records in one transaction.
func (r *RecordRepository) UpsertMany(ctx context.Context, userID string, records []model.FastingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, rec := range records {
		if err := upsertRecord(ctx, tx, userID, rec, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, userID, date string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM fasting_records WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (r *RecordRepository) DeleteAll(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM fasting_records WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func upsertRecord(ctx context.Context, db execer, userID string, rec model.FastingRecord, now time.Time) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT INTO fasting_records (user_id, date, hours, start_time, end_time, notes, completed, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
		     hours = excluded.hours,
		     start_time = excluded.start_time,
		     end_time = excluded.end_time,
		     notes = excluded.notes,
		     completed = excluded.completed,
		     updated_at = excluded.updated_at`,
		userID,
		rec.Date,
		rec.Hours,
		nullString(rec.StartTime),
		nullString(rec.EndTime),
		nullString(rec.Notes),
		rec.Completed,
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", rec.Date, err)
	}
	return nil
}
