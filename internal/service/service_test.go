package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fasting/backend/internal/db"
	"fasting/backend/internal/logging"
	"fasting/backend/internal/model"
	"fasting/backend/internal/repository"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type testServices struct {
	db       *sql.DB
	clock    *testClock
	auth     *AuthService
	settings *SettingsService
	records  *RecordService
	fasting  *FastingService
	account  *AccountService
}

func newTestServices(t *testing.T, loc *time.Location) *testServices {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	_, err = db.RunMigrations(context.Background(), database, migrationsDir)
	require.NoError(t, err)

	logger := logging.Discard()
	userRepo := repository.NewUserRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	recordRepo := repository.NewRecordRepository(database)
	states := repository.NewSQLiteFastingStateStore(database)

	clock := &testClock{now: time.Date(2024, 12, 10, 20, 0, 0, 0, time.UTC)}
	auth := NewAuthService(userRepo, settingsRepo, recordRepo, states, AuthOptions{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, logger)
	settings := NewSettingsService(settingsRepo, logger)
	settings.now = clock.Now
	records := NewRecordService(recordRepo, loc, logger)
	records.now = clock.Now
	fasting := NewFastingService(states, settings, records, loc, logger)
	fasting.now = clock.Now

	return &testServices{
		db:       database,
		clock:    clock,
		auth:     auth,
		settings: settings,
		records:  records,
		fasting:  fasting,
		account:  NewAccountService(auth, settings, records, fasting, logger),
	}
}

func (s *testServices) register(t *testing.T, email string) model.User {
	t.Helper()
	result, apiErr := s.auth.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "123456",
		Name:     "Tester",
	})
	require.Nil(t, apiErr)
	return result.User
}
