package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pathway/internal/database"
	"pathway/internal/models"
)

// ErrUsernameTaken is returned when an insert hits the username unique constraint
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user. Username uniqueness is enforced by the
// storage layer; a constraint violation surfaces as ErrUsernameTaken.
func (r *UserRepository) CreateUser(username string, passwordHash []byte, email string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, username, passwordHash, email)
	if err != nil {
		if r.db.Dialect.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		CreatedAt:    time.Now(),
	}, nil
}

// GetUserByUsername retrieves a user by username, or nil when absent
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.getUser("username = ?", username)
}

// GetUserByExternalID retrieves a user by linked platform identity, or nil when absent
func (r *UserRepository) GetUserByExternalID(externalID string) (*models.User, error) {
	return r.getUser("external_id = ?", externalID)
}

func (r *UserRepository) getUser(where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, COALESCE(email, ''), COALESCE(external_id, ''), COALESCE(quiz_result, ''), created_at
		FROM users
		WHERE ` + where
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.ExternalID,
		&user.QuizResult,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// LinkExternalID attaches a platform identity to the account on successful login
func (r *UserRepository) LinkExternalID(username, externalID string) error {
	query := "UPDATE users SET external_id = ? WHERE username = ?"
	if _, err := r.db.Exec(query, externalID, username); err != nil {
		return fmt.Errorf("failed to link external id: %w", err)
	}
	return nil
}

// UpdateQuizResult stores the latest quiz summary on the account row
func (r *UserRepository) UpdateQuizResult(externalID, summary string) error {
	query := "UPDATE users SET quiz_result = ? WHERE external_id = ?"
	if _, err := r.db.Exec(query, summary, externalID); err != nil {
		return fmt.Errorf("failed to update quiz result: %w", err)
	}
	return nil
}
