// Package sweeper implements the periodic due-date reminder job.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/teamhub-dev/teamhub-backend/internal/config"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
)

type taskSource interface {
	DueBetween(ctx context.Context, from, to time.Time) ([]domain.Task, error)
}

type notifier interface {
	Dispatch(ctx context.Context, n domain.Notification) (*domain.Notification, domain.PushResult, error)
}

// Sweeper scans for tasks approaching their due date and sends reminder
// notifications to their assignees. Runs are stateless: a task still due
// on the next run gets another reminder.
type Sweeper struct {
	log      *slog.Logger
	tasks    taskSource
	notify   notifier
	clock    clockwork.Clock
	window   int
	interval time.Duration
}

func New(log *slog.Logger, cfg config.Sweeper, tasks taskSource, notify notifier, clock clockwork.Clock) *Sweeper {
	return &Sweeper{
		log:      log.With("component", "sweeper"),
		tasks:    tasks,
		notify:   notify,
		clock:    clock,
		window:   cfg.ReminderWindowDays,
		interval: cfg.Interval,
	}
}

// RunOnce performs a single sweep over [today, today+window] and returns
// how many reminders went out. A failed reminder is logged and skipped;
// the sweep keeps going.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	today := truncateToDate(s.clock.Now().UTC())
	until := today.AddDate(0, 0, s.window)

	tasks, err := s.tasks.DueBetween(ctx, today, until)
	if err != nil {
		return 0, fmt.Errorf("select due tasks: %w", err)
	}

	sent := 0
	for _, t := range tasks {
		if t.AssigneeID == nil || t.DueDate == nil {
			continue
		}

		days := daysUntil(today, *t.DueDate)
		_, _, dispatchErr := s.notify.Dispatch(ctx, domain.Notification{
			Type:        domain.NotificationDueDateReminder,
			Title:       "Due date reminder",
			Message:     fmt.Sprintf("%q is %s", t.Title, dueMessage(days)),
			RecipientID: *t.AssigneeID,
			TargetType:  domain.TargetTask,
			TargetID:    t.ID,
		})
		if dispatchErr != nil {
			s.log.WarnContext(ctx, "reminder failed",
				slog.String("task_id", t.ID.String()),
				slog.Any("error", dispatchErr),
			)
			continue
		}
		sent++
	}

	s.log.InfoContext(ctx, "sweep finished",
		slog.Int("due_tasks", len(tasks)),
		slog.Int("reminders_sent", sent),
	)

	return sent, nil
}

// Run sweeps immediately and then once per interval until the context is
// cancelled. Sweep errors are logged, not fatal: the next tick retries.
func (s *Sweeper) Run(ctx context.Context) error {
	for {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.ErrorContext(ctx, "sweep failed", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.interval):
		}
	}
}

// daysUntil counts whole calendar days from today to the due date.
func daysUntil(today, due time.Time) int {
	return int(truncateToDate(due).Sub(today) / (24 * time.Hour))
}

func dueMessage(days int) string {
	switch {
	case days <= 0:
		return "due today!"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
