package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"pathway/internal/models"
	"pathway/internal/notify"
)

var (
	ErrAlreadyPaired      = errors.New("already paired with a mentor")
	ErrNoMentorsAvailable = errors.New("no mentors available")
	ErrNotMentor          = errors.New("not a registered mentor")
	ErrNoPendingRequest   = errors.New("no pending request from that mentee")
)

// MentorService matches mentees to the least-loaded registered mentor.
// Selection reads every queue length and appends under one mutex, so two
// concurrent requesters can never both observe the same pre-append
// lengths. Pairings are permanent for the process lifetime.
type MentorService struct {
	auth     *AuthService
	notifier notify.Notifier

	mu         sync.Mutex
	mentors    []string // registration order, the deterministic tie-break
	registered map[string]bool
	pending    map[string][]string // mentor -> FIFO of waiting mentees
	pairs      map[string]string   // mentee -> mentor
}

// NewMentorService creates a new mentor service
func NewMentorService(auth *AuthService, notifier notify.Notifier) *MentorService {
	return &MentorService{
		auth:       auth,
		notifier:   notifier,
		registered: make(map[string]bool),
		pending:    make(map[string][]string),
		pairs:      make(map[string]string),
	}
}

// RegisterMentor adds the user to the mentor pool. Registering twice is a no-op.
func (s *MentorService) RegisterMentor(externalID string) error {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registered[externalID] {
		return nil
	}
	s.registered[externalID] = true
	s.mentors = append(s.mentors, externalID)
	return nil
}

// RequestMentor queues the requester with the mentor whose pending queue
// is currently shortest. This is greedy load balancing, not a fairness
// guarantee; queue lengths are re-read on every request so the policy
// self-corrects as mentors accept.
func (s *MentorService) RequestMentor(ctx context.Context, externalID string) (*models.MentorAssignment, error) {
	if err := s.auth.RequireAuth(externalID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, paired := s.pairs[externalID]; paired {
		s.mu.Unlock()
		return nil, ErrAlreadyPaired
	}
	if len(s.mentors) == 0 {
		s.mu.Unlock()
		return nil, ErrNoMentorsAvailable
	}

	chosen := s.mentors[0]
	for _, mentor := range s.mentors[1:] {
		if len(s.pending[mentor]) < len(s.pending[chosen]) {
			chosen = mentor
		}
	}
	s.pending[chosen] = append(s.pending[chosen], externalID)
	position := len(s.pending[chosen])
	s.mu.Unlock()

	s.notifyBestEffort(ctx, chosen,
		fmt.Sprintf("User %s has requested mentoring. Accept with: accept %s", externalID, externalID))

	return &models.MentorAssignment{MentorID: chosen, Position: position}, nil
}

// AcceptMentee removes the mentee from the mentor's queue and establishes
// the permanent pairing.
func (s *MentorService) AcceptMentee(ctx context.Context, mentorID, menteeID string) error {
	if err := s.auth.RequireAuth(mentorID); err != nil {
		return err
	}

	s.mu.Lock()
	if !s.registered[mentorID] {
		s.mu.Unlock()
		return ErrNotMentor
	}

	queue := s.pending[mentorID]
	index := -1
	for i, id := range queue {
		if id == menteeID {
			index = i
			break
		}
	}
	if index == -1 {
		s.mu.Unlock()
		return ErrNoPendingRequest
	}

	s.pending[mentorID] = append(queue[:index], queue[index+1:]...)
	s.pairs[menteeID] = mentorID
	s.mu.Unlock()

	s.notifyBestEffort(ctx, menteeID,
		fmt.Sprintf("Mentor %s has accepted your request.", mentorID))

	return nil
}

// PairedMentor returns the mentor a mentee is paired with, if any
func (s *MentorService) PairedMentor(menteeID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mentor, ok := s.pairs[menteeID]
	return mentor, ok
}

// PendingCount returns the current queue length for a mentor
func (s *MentorService) PendingCount(mentorID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[mentorID])
}

// notifyBestEffort sends a notification and swallows any delivery failure
func (s *MentorService) notifyBestEffort(ctx context.Context, externalID, text string) {
	if err := s.notifier.Notify(ctx, externalID, text); err != nil {
		log.Printf("Notification to %s failed: %v", externalID, err)
	}
}
