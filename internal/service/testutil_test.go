package service

import (
	"context"
	"sync"
	"testing"

	"pathway/internal/database"
	"pathway/internal/repository"
)

// newTestServices builds an auth service over an in-memory SQLite store
func newTestServices(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash BLOB NOT NULL,
			email TEXT,
			external_id TEXT,
			quiz_result TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	users := repository.NewUserRepository(db)
	return NewAuthService(users), users
}

// registerAndLogin creates an account and opens a session for it
func registerAndLogin(t *testing.T, auth *AuthService, username, externalID string) {
	t.Helper()

	if _, err := auth.Register(username, "password123", ""); err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	if err := auth.Login(username, "password123", externalID); err != nil {
		t.Fatalf("Login(%q) error = %v", username, err)
	}
}

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	fail bool
}

type sentNotification struct {
	externalID string
	text       string
}

func (n *recordingNotifier) Notify(ctx context.Context, externalID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{externalID: externalID, text: text})
	if n.fail {
		return context.DeadlineExceeded
	}
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
