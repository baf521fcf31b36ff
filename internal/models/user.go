package models

import "time"

// User represents a registered account in the system.
// ExternalID is the chat-platform identity linked on first login;
// QuizResult holds the summary of the most recently completed quiz.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Email        string
	ExternalID   string
	QuizResult   string
	CreatedAt    time.Time
}
