package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fasting/backend/internal/app"
	"fasting/backend/internal/config"
	"fasting/backend/internal/cycle"
	"fasting/backend/internal/db"
	"fasting/backend/internal/logging"
	"fasting/backend/internal/model"
	"fasting/backend/internal/record"
	"fasting/backend/internal/repository"
	"fasting/backend/internal/service"
)

type rootOptions struct {
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "fastingctl",
		Short:         "Operate the fasting backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of text")

	root.AddCommand(
		newMigrateCmd(),
		newPhasesCmd(opts),
		newResolveCmd(opts),
		newTargetCmd(opts),
		newSeedCmd(),
		newStatsCmd(opts),
	)
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			applied, err := db.RunMigrations(cmd.Context(), database, cfg.MigrationsDir)
			if err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
}

func newPhasesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "List the fasting phase timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			timeline := service.PhaseTimeline()
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), timeline)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HOUR\tPHASE\tINTENSITY")
			for _, p := range timeline {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.Hour, p.Title, p.Intensity)
			}
			return w.Flush()
		},
	}
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var hours float64
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the phase reached after a number of fasting hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved := service.ResolvePhase(hours)
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), resolved)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%.1fh: %s (hour %d)\n", hours, resolved.Phase.Title, resolved.Phase.Hour)
			if resolved.NextPhase != nil {
				fmt.Fprintf(out, "next: %s at hour %d, %.0f%% of the way\n",
					resolved.NextPhase.Title, resolved.NextPhase.Hour, resolved.Progress)
			} else {
				fmt.Fprintln(out, "final phase reached")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&hours, "hours", 0, "elapsed fasting hours")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

func newTargetCmd(opts *rootOptions) *cobra.Command {
	var (
		phase  string
		custom float64
	)
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Show the fasting target for a cycle phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected, err := cycle.ParsePhase(phase)
			if err != nil {
				return err
			}
			selection := model.CycleSelection{SelectedPhase: selected}
			if cmd.Flags().Changed("custom") {
				if err := cycle.ValidateCustomHours(custom); err != nil {
					return err
				}
				selection.CustomHours = &custom
			}

			info := cycle.Info(selected)
			target := cycle.EffectiveTargetHours(selection)
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"phase":       info,
					"targetHours": target,
					"custom":      selection.CustomHours != nil,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %s window\n", info.Name, info.DayRange, info.FastingWindow)
			fmt.Fprintf(out, "target: %sh\n", strconv.FormatFloat(target, 'f', -1, 64))
			return nil
		},
	}
	cmd.Flags().StringVar(&phase, "phase", string(model.DefaultCyclePhase), "cycle phase")
	cmd.Flags().Float64Var(&custom, "custom", 0, "custom target hours (8-24)")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo fasting records for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			user, err := findUser(cmd.Context(), database, email)
			if err != nil {
				return err
			}
			seed := record.SeedRecords()
			if err := repository.NewRecordRepository(database).UpsertMany(cmd.Context(), user.ID, seed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records for %s\n", len(seed), user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var (
		email string
		month string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the progress summary of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := parseMonth(month)
			if err != nil {
				return err
			}

			cfg, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			user, err := findUser(cmd.Context(), database, email)
			if err != nil {
				return err
			}
			services := app.NewServices(cfg, database, logging.Discard())
			summary, apiErr := services.Records.Summary(cmd.Context(), user.ID, filter)
			if apiErr != nil {
				return apiErr
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "fasts\t%d\n", summary.TotalFasts)
			fmt.Fprintf(w, "completed\t%d (%.0f%%)\n", summary.CompletedCount, summary.CompletionRate)
			fmt.Fprintf(w, "average\t%.1fh\n", summary.AverageHours)
			fmt.Fprintf(w, "longest\t%.1fh\n", summary.LongestFast)
			fmt.Fprintf(w, "streak\t%d (best %d)\n", summary.CurrentStreak, summary.LongestStreak)
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&month, "month", "", "limit to a month (YYYY-MM)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func openDatabase() (config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, database, nil
}

func findUser(ctx context.Context, database *sql.DB, email string) (*model.User, error) {
	user, err := repository.NewUserRepository(database).GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("no account for %q", email)
	}
	return user, err
}

// parseMonth turns "YYYY-MM" into a filter. An empty value means no filter.
func parseMonth(raw string) (*service.MonthFilter, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		return nil, fmt.Errorf("month must be YYYY-MM, got %q", raw)
	}
	return &service.MonthFilter{Year: parsed.Year(), Month: int(parsed.Month())}, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
