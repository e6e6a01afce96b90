package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fasting/backend/internal/app"
	"fasting/backend/internal/config"
	"fasting/backend/internal/db"
	"fasting/backend/internal/handler"
	"fasting/backend/internal/logging"
	"fasting/backend/internal/middleware"
	"fasting/backend/internal/reminder"
	"fasting/backend/internal/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	applied, err := db.RunMigrations(ctx, database, cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", "files", applied)
	}

	services := app.NewServices(cfg, database, logger)

	scheduler, err := reminder.NewScheduler(
		cfg.ReminderSchedule,
		services.Fasting,
		reminder.LogNotifier{Logger: logger},
		logger,
	)
	if err != nil {
		return err
	}

	engine := router.New(router.Dependencies{
		AuthService:     services.Auth,
		AuthHandler:     handler.NewAuthHandler(services.Auth),
		PhaseHandler:    handler.NewPhaseHandler(),
		SettingsHandler: handler.NewSettingsHandler(services.Settings),
		FastingHandler:  handler.NewFastingHandler(services.Fasting, cfg.CORSOrigins, logger),
		RecordHandler:   handler.NewRecordHandler(services.Records),
		AccountHandler:  handler.NewAccountHandler(services.Account),
		AuthLimiter:     middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthBurst),
		CORSOrigins:     cfg.CORSOrigins,
		Logger:          logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("backend listening",
			"addr", server.Addr,
			"timer_persistence", cfg.TimerPersistence,
			"timezone", cfg.Location.String(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		<-scheduler.Stop().Done()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
