package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fasting/backend/internal/db"
	"fasting/backend/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	_, err = db.RunMigrations(context.Background(), database, migrationsDir)
	require.NoError(t, err)
	return database
}

func createUser(t *testing.T, database *sql.DB, id string) {
	t.Helper()
	now := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	err := NewUserRepository(database).Create(context.Background(), &model.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         id,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	createUser(t, database, "u1")

	repo := NewUserRepository(database)
	user, err := repo.GetByEmail(ctx, "u1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "u1", user.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordRepository_UpsertListDelete(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	createUser(t, database, "u1")
	createUser(t, database, "u2")
	repo := NewRecordRepository(database)

	require.NoError(t, repo.UpsertMany(ctx, "u1", []model.FastingRecord{
		{Date: "2024-12-05", Hours: 12},
		{Date: "2024-12-01", Hours: 16, StartTime: "20:00", EndTime: "12:00", Notes: "Felt great!", Completed: true},
	}))
	require.NoError(t, repo.Upsert(ctx, "u2", model.FastingRecord{Date: "2024-12-01", Hours: 10}))
	require.NoError(t, repo.Upsert(ctx, "u1", model.FastingRecord{Date: "2024-12-05", Hours: 13, Completed: true}))

	records, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.FastingRecord{Date: "2024-12-01", Hours: 16, StartTime: "20:00", EndTime: "12:00", Notes: "Felt great!", Completed: true}, records[0])
	assert.Equal(t, model.FastingRecord{Date: "2024-12-05", Hours: 13, Completed: true}, records[1])

	require.NoError(t, repo.Delete(ctx, "u1", "2024-12-01"))
	records, err = repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, repo.DeleteAll(ctx, "u1"))
	records, err = repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)

	others, err := repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestSettingsRepository_SaveGet(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	createUser(t, database, "u1")
	repo := NewSettingsRepository(database)

	_, err := repo.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	now := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	settings := model.DefaultUserSettings("u1", now)
	require.NoError(t, repo.Save(ctx, settings))

	custom := 20.0
	settings.SelectedPhase = model.CycleLuteal
	settings.CustomHours = &custom
	settings.RemindersEnabled = false
	require.NoError(t, repo.Save(ctx, settings))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CycleLuteal, got.SelectedPhase)
	require.NotNil(t, got.CustomHours)
	assert.Equal(t, 20.0, *got.CustomHours)
	assert.False(t, got.RemindersEnabled)
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestFastingStateStores(t *testing.T) {
	stores := map[string]func(t *testing.T) FastingStateStore{
		"sqlite": func(t *testing.T) FastingStateStore {
			database := openTestDB(t)
			createUser(t, database, "u1")
			createUser(t, database, "u2")
			return NewSQLiteFastingStateStore(database)
		},
		"memory": func(t *testing.T) FastingStateStore {
			return NewMemoryFastingStateStore()
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			now := time.Date(2024, 12, 1, 20, 0, 0, 0, time.UTC)

			_, err := store.Get(ctx, "u1")
			require.ErrorIs(t, err, ErrNotFound)

			running := model.NewFastingState("u1", now)
			running.Status = model.StatusRunning
			running.AccumulatedSeconds = 30
			running.RunStartedAt = &now
			running.StartedAt = &now
			running.Version = 2
			require.NoError(t, store.Save(ctx, running))
			require.NoError(t, store.Save(ctx, model.NewFastingState("u2", now)))

			got, err := store.Get(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, model.StatusRunning, got.Status)
			assert.Equal(t, int64(30), got.AccumulatedSeconds)
			require.NotNil(t, got.StartedAt)
			assert.True(t, got.StartedAt.Equal(now))
			assert.Nil(t, got.ReminderSentAt)
			assert.Equal(t, 2, got.Version)

			list, err := store.ListRunning(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "u1", list[0].UserID)
		})
	}
}
