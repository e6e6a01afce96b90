package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	TimerDurable   = "durable"
	TimerEphemeral = "ephemeral"
)

type Config struct {
	Port              string
	DBPath            string
	JWTSecret         string
	TokenTTL          time.Duration
	CORSOrigins       []string
	MigrationsDir     string
	LogLevel          string
	Location          *time.Location
	TimerPersistence  string
	ReminderSchedule  string
	SeedDemoData      bool
	AuthRatePerMinute int
	AuthBurst         int
}

// fileConfig is the optional YAML base. Environment variables override it.
type fileConfig struct {
	Port              string   `yaml:"port"`
	DBPath            string   `yaml:"db_path"`
	JWTSecret         string   `yaml:"jwt_secret"`
	TokenTTLHours     int      `yaml:"token_ttl_hours"`
	CORSOrigins       []string `yaml:"cors_origins"`
	MigrationsDir     string   `yaml:"migrations_dir"`
	LogLevel          string   `yaml:"log_level"`
	Timezone          string   `yaml:"timezone"`
	TimerPersistence  string   `yaml:"timer_persistence"`
	ReminderSchedule  string   `yaml:"reminder_schedule"`
	SeedDemoData      bool     `yaml:"seed_demo_data"`
	AuthRatePerMinute int      `yaml:"auth_rate_per_minute"`
	AuthBurst         int      `yaml:"auth_burst"`
}

func defaults() fileConfig {
	return fileConfig{
		Port:              "8080",
		DBPath:            "./data/fasting.db",
		JWTSecret:         "change-this-secret",
		TokenTTLHours:     72,
		CORSOrigins:       []string{"http://localhost:8081", "http://127.0.0.1:8081"},
		MigrationsDir:     "./migrations",
		LogLevel:          "info",
		Timezone:          "UTC",
		TimerPersistence:  TimerDurable,
		ReminderSchedule:  "* * * * *",
		AuthRatePerMinute: 20,
		AuthBurst:         5,
	}
}

func Load() (Config, error) {
	base := defaults()
	if path := getEnv("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &base); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := Config{
		Port:              getEnv("PORT", base.Port),
		DBPath:            getEnv("DB_PATH", base.DBPath),
		JWTSecret:         getEnv("JWT_SECRET", base.JWTSecret),
		TokenTTL:          time.Duration(getEnvInt("TOKEN_TTL_HOURS", base.TokenTTLHours)) * time.Hour,
		CORSOrigins:       getEnvList("CORS_ORIGINS", base.CORSOrigins),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", base.MigrationsDir),
		LogLevel:          getEnv("LOG_LEVEL", base.LogLevel),
		TimerPersistence:  strings.ToLower(getEnv("TIMER_PERSISTENCE", base.TimerPersistence)),
		ReminderSchedule:  getEnv("REMINDER_SCHEDULE", base.ReminderSchedule),
		SeedDemoData:      getEnvBool("SEED_DEMO_DATA", base.SeedDemoData),
		AuthRatePerMinute: getEnvInt("AUTH_RATE_PER_MINUTE", base.AuthRatePerMinute),
		AuthBurst:         getEnvInt("AUTH_BURST", base.AuthBurst),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", base.Timezone))
	if err != nil {
		return Config{}, fmt.Errorf("load timezone: %w", err)
	}
	cfg.Location = loc

	if cfg.TimerPersistence != TimerDurable && cfg.TimerPersistence != TimerEphemeral {
		return Config{}, fmt.Errorf("timer persistence must be %q or %q, got %q", TimerDurable, TimerEphemeral, cfg.TimerPersistence)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
