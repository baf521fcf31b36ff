package service

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrAlreadyClaimed = errors.New("daily reward already claimed today")

// Score is one leaderboard row
type Score struct {
	ExternalID string
	Activity   int
}

// EngagementService keeps the per-user activity counters used for the
// leaderboard, the once-per-day reward claims, and the friend lists.
type EngagementService struct {
	auth *AuthService

	mu        sync.Mutex
	activity  map[string]int
	lastClaim map[string]string // externalID -> YYYY-MM-DD of last claim
	friends   map[string]map[string]struct{}
}

// NewEngagementService creates a new engagement service
func NewEngagementService(auth *AuthService) *EngagementService {
	return &EngagementService{
		auth:      auth,
		activity:  make(map[string]int),
		lastClaim: make(map[string]string),
		friends:   make(map[string]map[string]struct{}),
	}
}

// RecordActivity increments the user's activity counter
func (s *EngagementService) RecordActivity(externalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity[externalID]++
}

// ClaimDailyReward grants one activity increment per calendar day
func (s *EngagementService) ClaimDailyReward(externalID string) error {
	return s.claimDailyRewardAt(externalID, time.Now())
}

func (s *EngagementService) claimDailyRewardAt(externalID string, now time.Time) error {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return err
	}

	today := now.Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastClaim[externalID] == today {
		return ErrAlreadyClaimed
	}
	s.lastClaim[externalID] = today
	s.activity[externalID]++
	return nil
}

// Activity returns the user's current activity count
func (s *EngagementService) Activity(externalID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activity[externalID]
}

// Leaderboard returns up to limit users ordered by activity descending,
// ties broken by ID for a stable order.
func (s *EngagementService) Leaderboard(limit int) []Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make([]Score, 0, len(s.activity))
	for id, count := range s.activity {
		scores = append(scores, Score{ExternalID: id, Activity: count})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Activity != scores[j].Activity {
			return scores[i].Activity > scores[j].Activity
		}
		return scores[i].ExternalID < scores[j].ExternalID
	})

	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// AddFriend adds another user to the caller's friend list. One-sided, no
// mutual confirmation.
func (s *EngagementService) AddFriend(externalID, friendID string) error {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.friends[externalID] == nil {
		s.friends[externalID] = make(map[string]struct{})
	}
	s.friends[externalID][friendID] = struct{}{}
	return nil
}

// Friends returns the caller's friend list in a stable order
func (s *EngagementService) Friends(externalID string) ([]string, error) {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	friends := make([]string, 0, len(s.friends[externalID]))
	for id := range s.friends[externalID] {
		friends = append(friends, id)
	}
	sort.Strings(friends)
	return friends, nil
}
