package service

import (
	"errors"
	"testing"
	"time"

	"pathway/internal/models"
)

func newGoalFixture(t *testing.T) (*GoalService, *AuthService) {
	t.Helper()
	auth, _ := newTestServices(t)
	return NewGoalService(auth), auth
}

func TestAddAndListGoals(t *testing.T) {
	goals, auth := newGoalFixture(t)
	registerAndLogin(t, auth, "bilbo", "ext-g1")

	first, err := goals.AddGoal("ext-g1", "Finish the book", "2031-09-22")
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}
	second, err := goals.AddGoal("ext-g1", "Visit the elves", "")
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}

	if second.ID <= first.ID {
		t.Errorf("IDs not monotonically increasing: %d then %d", first.ID, second.ID)
	}

	list, err := goals.ListGoals("ext-g1")
	if err != nil {
		t.Fatalf("ListGoals() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListGoals() returned %d goals, want 2", len(list))
	}
	if list[0].DueDate == nil || list[1].DueDate != nil {
		t.Error("due dates not preserved")
	}
}

func TestAddGoalInvalidDueDate(t *testing.T) {
	goals, auth := newGoalFixture(t)
	registerAndLogin(t, auth, "thorin", "ext-g2")

	tests := []struct {
		name string
		due  string
	}{
		{name: "wrong order", due: "22-09-2031"},
		{name: "not a date", due: "someday"},
		{name: "partial", due: "2031-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := goals.AddGoal("ext-g2", "goal", tt.due); !errors.Is(err, ErrInvalidDueDate) {
				t.Errorf("AddGoal(due=%q) error = %v, want ErrInvalidDueDate", tt.due, err)
			}
		})
	}
}

func TestCompleteGoal(t *testing.T) {
	goals, auth := newGoalFixture(t)
	registerAndLogin(t, auth, "balin", "ext-g3")

	goal, err := goals.AddGoal("ext-g3", "Reclaim Moria", "")
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}

	if err := goals.CompleteGoal("ext-g3", goal.ID); err != nil {
		t.Fatalf("CompleteGoal() error = %v", err)
	}

	list, _ := goals.ListGoals("ext-g3")
	if !list[0].Completed {
		t.Error("goal not marked completed")
	}

	if err := goals.CompleteGoal("ext-g3", 9999); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("CompleteGoal(9999) error = %v, want ErrGoalNotFound", err)
	}
}

func TestCompleteGoalOwnership(t *testing.T) {
	goals, auth := newGoalFixture(t)
	registerAndLogin(t, auth, "owner", "ext-g4")
	registerAndLogin(t, auth, "intruder", "ext-g5")

	goal, err := goals.AddGoal("ext-g4", "Private goal", "")
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}

	if err := goals.CompleteGoal("ext-g5", goal.ID); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("CompleteGoal() by non-owner error = %v, want ErrGoalNotFound", err)
	}
}

func TestDueSoonWindow(t *testing.T) {
	goals, auth := newGoalFixture(t)
	registerAndLogin(t, auth, "dori", "ext-g6")

	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}

	mustAdd := func(text, due string) *models.Goal {
		t.Helper()
		g, err := goals.AddGoal("ext-g6", text, due)
		if err != nil {
			t.Fatalf("AddGoal(%q) error = %v", text, err)
		}
		return g
	}

	mustAdd("due today", day(0))
	mustAdd("due tomorrow", day(1))
	mustAdd("due next week", day(5))
	mustAdd("no deadline", "")
	overdue := mustAdd("already done", day(0))
	if err := goals.CompleteGoal("ext-g6", overdue.ID); err != nil {
		t.Fatalf("CompleteGoal() error = %v", err)
	}

	reminders := goals.DueSoon(now)
	if len(reminders) != 2 {
		t.Fatalf("DueSoon() returned %d reminders, want 2", len(reminders))
	}

	byText := make(map[string]int)
	for _, r := range reminders {
		byText[r.Text] = r.DaysRemaining
	}
	if days, ok := byText["due today"]; !ok || days != 0 {
		t.Errorf("due today: days = %d, present = %v", days, ok)
	}
	if days, ok := byText["due tomorrow"]; !ok || days != 1 {
		t.Errorf("due tomorrow: days = %d, present = %v", days, ok)
	}
}

func TestDueSoonWindowIgnoresLocalZone(t *testing.T) {
	goals, auth := newGoalFixture(t)
	registerAndLogin(t, auth, "nori", "ext-g7")

	mustAdd := func(text, due string) {
		t.Helper()
		if _, err := goals.AddGoal("ext-g7", text, due); err != nil {
			t.Fatalf("AddGoal(%q) error = %v", text, err)
		}
	}
	mustAdd("due tomorrow", "2026-09-01")
	mustAdd("due in two days", "2026-09-02")

	// Due dates are stored at UTC midnight. A scan clock in a UTC-negative
	// zone must not shift the window: its truncated local midnight lies a
	// fraction of a day after the stored date, which integer day division
	// would otherwise swallow.
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, est)

	reminders := goals.DueSoon(now)
	if len(reminders) != 1 {
		t.Fatalf("DueSoon() returned %d reminders, want 1", len(reminders))
	}
	if reminders[0].Text != "due tomorrow" || reminders[0].DaysRemaining != 1 {
		t.Errorf("reminder = %q with days = %d, want due tomorrow with 1",
			reminders[0].Text, reminders[0].DaysRemaining)
	}
}

func TestGoalsRequireAuth(t *testing.T) {
	goals, _ := newGoalFixture(t)

	if _, err := goals.AddGoal("anon", "goal", ""); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("AddGoal() error = %v, want ErrUnauthenticated", err)
	}
	if _, err := goals.ListGoals("anon"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ListGoals() error = %v, want ErrUnauthenticated", err)
	}
	if err := goals.CompleteGoal("anon", 1); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("CompleteGoal() error = %v, want ErrUnauthenticated", err)
	}
}
