package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort       string
	DatabaseType     string
	DatabasePath     string
	DatabaseURL      string
	MigrationsPath   string
	TokenSecret      string
	TokenDuration    time.Duration
	ReminderInterval time.Duration

	// SES notifier settings; notifications are disabled when FromEmail is empty
	AWSRegion string
	FromEmail string
	FromName  string

	// Discord account-linking OAuth settings
	DiscordClientID     string
	DiscordClientSecret string
	AppBaseURL          string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is applied first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		DatabaseType:     getEnv("DB_TYPE", "sqlite"),
		DatabasePath:     getEnv("DB_PATH", "./pathway.db"),
		DatabaseURL:      getEnv("DB_URL", ""),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		TokenSecret:      getEnv("TOKEN_SECRET", "dev-only-secret"),
		TokenDuration:    getDuration("TOKEN_DURATION_HOURS", 24) * time.Hour,
		ReminderInterval: getDuration("REMINDER_INTERVAL_MINUTES", 60) * time.Minute,

		AWSRegion: getEnv("AWS_REGION", "eu-west-1"),
		FromEmail: getEnv("SES_FROM_EMAIL", ""),
		FromName:  getEnv("SES_FROM_NAME", "Pathway"),

		DiscordClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		AppBaseURL:          getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads an integer environment variable as a time.Duration unit count
func getDuration(key string, defaultValue int64) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return time.Duration(defaultValue)
}
