package models

import "time"

// Goal is a deadline-bound objective owned by a single user.
// DueDate is nil when the goal has no deadline.
type Goal struct {
	ID        int64
	OwnerID   string
	Text      string
	DueDate   *time.Time
	CreatedAt time.Time
	Completed bool
}

// DaysUntilDue returns the number of whole days between now and the due
// date. Both timestamps are compared as UTC calendar dates, the zone due
// dates are stored in, so the count does not shift with the caller's
// local zone. The second return is false when the goal has no due date.
func (g *Goal) DaysUntilDue(now time.Time) (int, bool) {
	if g.DueDate == nil {
		return 0, false
	}
	due := truncateToDate(g.DueDate.In(time.UTC))
	today := truncateToDate(now.In(time.UTC))
	return int(due.Sub(today).Hours() / 24), true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GoalReminder is a scheduler-facing view of a goal inside the reminder window
type GoalReminder struct {
	OwnerID       string
	Text          string
	DaysRemaining int
}
