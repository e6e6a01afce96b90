// Package reminder periodically notifies users whose running fast has reached
// its target.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fasting/backend/internal/metrics"
	"fasting/backend/internal/service"
)

const DefaultSchedule = "* * * * *"

type Collector interface {
	CollectDueReminders(ctx context.Context, now time.Time) ([]service.DueReminder, error)
}

type Notifier interface {
	Notify(ctx context.Context, due service.DueReminder) error
}

// LogNotifier delivers reminders to the structured log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(_ context.Context, due service.DueReminder) error {
	n.Logger.Info("fasting target reached",
		"user_id", due.UserID,
		"target_hours", due.TargetHours,
		"elapsed_hours", fmt.Sprintf("%.1f", due.ElapsedHours),
	)
	return nil
}

type Scheduler struct {
	cron      *cron.Cron
	collector Collector
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

func NewScheduler(schedule string, collector Collector, notifier Notifier, logger *slog.Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	s := &Scheduler{
		cron:      cron.New(),
		collector: collector,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("parse reminder schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and returns a context that is done once a running
// sweep has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Sweep notifies every due fast once and returns how many were sent.
func (s *Scheduler) Sweep(ctx context.Context) (int, error) {
	due, err := s.collector.CollectDueReminders(ctx, s.now())
	if err != nil && len(due) == 0 {
		return 0, fmt.Errorf("collect due reminders: %w", err)
	}

	sent := 0
	for _, d := range due {
		if notifyErr := s.notifier.Notify(ctx, d); notifyErr != nil {
			s.logger.Warn("reminder delivery failed", "user_id", d.UserID, "error", notifyErr)
			continue
		}
		metrics.RemindersSent.Inc()
		sent++
	}
	if err != nil {
		return sent, fmt.Errorf("collect due reminders: %w", err)
	}
	return sent, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sent, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("reminder sweep failed", "error", err)
	}
	if sent > 0 {
		s.logger.Debug("reminder sweep finished", "sent", sent)
	}
}
