// Package app wires repositories and services from configuration.
package app

import (
	"database/sql"
	"log/slog"

	"fasting/backend/internal/config"
	"fasting/backend/internal/repository"
	"fasting/backend/internal/service"
)

type Services struct {
	Auth     *service.AuthService
	Settings *service.SettingsService
	Records  *service.RecordService
	Fasting  *service.FastingService
	Account  *service.AccountService
}

func NewServices(cfg config.Config, database *sql.DB, logger *slog.Logger) *Services {
	userRepo := repository.NewUserRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	recordRepo := repository.NewRecordRepository(database)
	states := stateStore(cfg, database)

	auth := service.NewAuthService(userRepo, settingsRepo, recordRepo, states, service.AuthOptions{
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		SeedDemoData: cfg.SeedDemoData,
	}, logger)
	settings := service.NewSettingsService(settingsRepo, logger)
	records := service.NewRecordService(recordRepo, cfg.Location, logger)
	fasting := service.NewFastingService(states, settings, records, cfg.Location, logger)

	return &Services{
		Auth:     auth,
		Settings: settings,
		Records:  records,
		Fasting:  fasting,
		Account:  service.NewAccountService(auth, settings, records, fasting, logger),
	}
}

func stateStore(cfg config.Config, database *sql.DB) repository.FastingStateStore {
	if cfg.TimerPersistence == config.TimerEphemeral {
		return repository.NewMemoryFastingStateStore()
	}
	return repository.NewSQLiteFastingStateStore(database)
}
