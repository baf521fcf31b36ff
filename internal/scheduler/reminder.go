// Package scheduler runs the periodic goal-reminder scan.
package scheduler

import (
	"context"
	"log"
	"time"

	"pathway/internal/models"
	"pathway/internal/notify"
)

// GoalSource yields the goals currently inside the reminder window
type GoalSource interface {
	DueSoon(now time.Time) []models.GoalReminder
}

// ReminderScheduler periodically scans for goals due today or tomorrow
// and notifies their owners. Notifications are at-least-once: a goal
// still in the window on the next tick is notified again. Delivery
// failures are logged and dropped.
type ReminderScheduler struct {
	goals    GoalSource
	notifier notify.Notifier
	now      func() time.Time
}

// NewReminderScheduler creates a new reminder scheduler
func NewReminderScheduler(goals GoalSource, notifier notify.Notifier) *ReminderScheduler {
	return &ReminderScheduler{
		goals:    goals,
		notifier: notifier,
		now:      time.Now,
	}
}

// Start runs the scheduler until the context is cancelled. One scan runs
// immediately, then one per interval.
func (s *ReminderScheduler) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Reminder scheduler started (interval: %s)", interval)
	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single scan and returns how many notifications were
// attempted.
func (s *ReminderScheduler) RunOnce(ctx context.Context) int {
	reminders := s.goals.DueSoon(s.now())

	for _, r := range reminders {
		var text string
		if r.DaysRemaining == 0 {
			text = "Today is the final day for your goal: " + r.Text
		} else {
			text = "Only 1 day left for your goal: " + r.Text
		}

		if err := s.notifier.Notify(ctx, r.OwnerID, text); err != nil {
			log.Printf("Goal reminder to %s failed: %v", r.OwnerID, err)
		}
	}

	return len(reminders)
}
