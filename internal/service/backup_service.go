package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"pathway/internal/database"
)

// BackupData is the on-disk backup structure
type BackupData struct {
	Version      string       `json:"version"`
	ExportedAt   time.Time    `json:"exported_at"`
	DatabaseType string       `json:"database_type"`
	Users        []UserBackup `json:"users"`
}

// UserBackup is one user row in a backup file. The password hash is kept
// as raw bytes so restored accounts keep their credentials.
type UserBackup struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"password_hash"`
	Email        string    `json:"email"`
	ExternalID   string    `json:"external_id"`
	QuizResult   string    `json:"quiz_result"`
	CreatedAt    time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes the backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: s.db.Dialect.DriverName(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Export complete: %d users", len(backup.Users))
	return nil
}

// Import restores a backup file into the database
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup. Existing rows with the same username
// are left untouched.
func (s *BackupService) ImportFromReader(r io.Reader) error {
	log.Println("Starting database import...")

	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	imported, err := s.importUsers(backup.Users)
	if err != nil {
		return err
	}

	log.Printf("Import complete: %d of %d users", imported, len(backup.Users))
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, username, password_hash, COALESCE(email, ''),
		COALESCE(external_id, ''), COALESCE(quiz_result, ''), created_at FROM users ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email,
			&u.ExternalID, &u.QuizResult, &u.CreatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) (int, error) {
	imported := 0
	for _, u := range users {
		var existing int64
		err := s.db.QueryRow("SELECT id FROM users WHERE username = ?", u.Username).Scan(&existing)
		if err == nil {
			log.Printf("Skipping existing user: %s", u.Username)
			continue
		}
		if err != sql.ErrNoRows {
			return imported, fmt.Errorf("failed to check user %s: %w", u.Username, err)
		}

		_, err = s.db.Exec(`INSERT INTO users (username, password_hash, email, external_id, quiz_result, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			u.Username, u.PasswordHash, u.Email, u.ExternalID, u.QuizResult, u.CreatedAt)
		if err != nil {
			return imported, fmt.Errorf("failed to import user %s: %w", u.Username, err)
		}
		imported++
	}
	return imported, nil
}
