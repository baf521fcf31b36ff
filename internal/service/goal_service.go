package service

import (
	"errors"
	"sync"
	"time"

	"pathway/internal/models"
)

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrInvalidDueDate = errors.New("invalid due date, use YYYY-MM-DD")
)

// dueDateLayout is the accepted calendar-date format for goal deadlines
const dueDateLayout = "2006-01-02"

// GoalService tracks per-user goals. An RWMutex lets the reminder
// scheduler scan all goals without blocking owner writes.
type GoalService struct {
	auth *AuthService

	mu     sync.RWMutex
	goals  map[string][]*models.Goal
	nextID int64
}

// NewGoalService creates a new goal service
func NewGoalService(auth *AuthService) *GoalService {
	return &GoalService{
		auth:  auth,
		goals: make(map[string][]*models.Goal),
	}
}

// AddGoal records a goal for the caller. dueDate is optional; when
// present it must be a YYYY-MM-DD calendar date. IDs are monotonically
// increasing across all users.
func (s *GoalService) AddGoal(externalID, text, dueDate string) (*models.Goal, error) {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return nil, err
	}

	var due *time.Time
	if dueDate != "" {
		parsed, err := time.Parse(dueDateLayout, dueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		due = &parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	goal := &models.Goal{
		ID:        s.nextID,
		OwnerID:   externalID,
		Text:      text,
		DueDate:   due,
		CreatedAt: time.Now(),
	}
	s.goals[externalID] = append(s.goals[externalID], goal)

	return &models.Goal{
		ID:        goal.ID,
		OwnerID:   goal.OwnerID,
		Text:      goal.Text,
		DueDate:   goal.DueDate,
		CreatedAt: goal.CreatedAt,
	}, nil
}

// ListGoals returns the caller's goals in creation order
func (s *GoalService) ListGoals(externalID string) ([]models.Goal, error) {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]models.Goal, 0, len(s.goals[externalID]))
	for _, g := range s.goals[externalID] {
		goals = append(goals, *g)
	}
	return goals, nil
}

// CompleteGoal marks the caller's goal as completed
func (s *GoalService) CompleteGoal(externalID string, goalID int64) error {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.goals[externalID] {
		if g.ID == goalID {
			g.Completed = true
			return nil
		}
	}
	return ErrGoalNotFound
}

// DueSoon snapshots every incomplete goal whose due date is today or
// tomorrow relative to now. Called by the reminder scheduler on each tick.
func (s *GoalService) DueSoon(now time.Time) []models.GoalReminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reminders []models.GoalReminder
	for ownerID, goals := range s.goals {
		for _, g := range goals {
			if g.Completed {
				continue
			}
			days, ok := g.DaysUntilDue(now)
			if !ok {
				continue
			}
			if days == 0 || days == 1 {
				reminders = append(reminders, models.GoalReminder{
					OwnerID:       ownerID,
					Text:          g.Text,
					DaysRemaining: days,
				})
			}
		}
	}
	return reminders
}
