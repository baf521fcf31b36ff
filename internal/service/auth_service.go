package service

import (
	"errors"
	"fmt"
	"sync"

	"pathway/internal/models"
	"pathway/internal/repository"
	"pathway/internal/security"
	"pathway/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrNoLinkedAccount    = errors.New("no account linked to this identity")
)

// AuthService owns credential verification and the per-platform-identity
// session registry. Every user-initiated operation in the other services
// is gated on IsAuthenticated.
type AuthService struct {
	users *repository.UserRepository

	mu       sync.Mutex
	sessions map[string]bool
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: make(map[string]bool),
	}
}

// Register creates a new account. Username uniqueness is enforced by the
// storage layer and surfaces as repository.ErrUsernameTaken.
func (s *AuthService) Register(username, password, email string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(username, passwordHash, email)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials, links the platform identity to the
// account and marks the session authenticated. A failed attempt leaves
// the session unauthenticated.
func (s *AuthService) Login(username, password, externalID string) error {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil || !security.VerifyPassword(password, user.PasswordHash) {
		s.setAuthenticated(externalID, false)
		return ErrInvalidCredentials
	}

	if err := s.users.LinkExternalID(username, externalID); err != nil {
		return err
	}

	s.setAuthenticated(externalID, true)
	return nil
}

// LoginExternal opens a session for a platform identity verified through
// the OAuth flow. The identity must already be linked to an account via a
// previous password login.
func (s *AuthService) LoginExternal(externalID string) error {
	user, err := s.users.GetUserByExternalID(externalID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrNoLinkedAccount
	}

	s.setAuthenticated(externalID, true)
	return nil
}

// Logout clears the session flag
func (s *AuthService) Logout(externalID string) error {
	if !s.IsAuthenticated(externalID) {
		return ErrUnauthenticated
	}
	s.setAuthenticated(externalID, false)
	return nil
}

// IsAuthenticated reports whether the platform identity has a live session.
// Unknown identities are unauthenticated.
func (s *AuthService) IsAuthenticated(externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[externalID]
}

// RequireAuth returns ErrUnauthenticated unless the identity has a live session
func (s *AuthService) RequireAuth(externalID string) error {
	if !s.IsAuthenticated(externalID) {
		return ErrUnauthenticated
	}
	return nil
}

// Profile returns the account linked to the platform identity
func (s *AuthService) Profile(externalID string) (*models.User, error) {
	if err := s.RequireAuth(externalID); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) setAuthenticated(externalID string, authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[externalID] = authenticated
}
