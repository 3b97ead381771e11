package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Default file locations, resolved relative to the working directory.
const (
	DefaultTokenPath          = "token.json"
	DefaultCredentialsPath    = "credentials.json"
	DefaultServiceAccountPath = "service_account.json"
)

// Config holds the credential and Drive settings for the server.
// All values come from environment variables, optionally seeded from a
// .env file in the working directory.
type Config struct {
	// TokenPath is where the OAuth token cache is read from and written to.
	TokenPath string

	// CredentialsPath points to the OAuth client secret JSON.
	CredentialsPath string

	// ServiceAccountPath points to a service account key JSON. When the
	// file exists it takes precedence over the OAuth flow.
	ServiceAccountPath string

	// DriveFolderID scopes spreadsheet listing and creation to a Drive
	// folder. Empty means the whole Drive.
	DriveFolderID string
}

// Load reads configuration from the environment.
// A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		TokenPath:          getEnvOrDefault("TOKEN_PATH", DefaultTokenPath),
		CredentialsPath:    getEnvOrDefault("CREDENTIALS_PATH", DefaultCredentialsPath),
		ServiceAccountPath: getEnvOrDefault("SERVICE_ACCOUNT_PATH", DefaultServiceAccountPath),
		DriveFolderID:      os.Getenv("DRIVE_FOLDER_ID"),
	}
}

// SetupLogging configures the default slog logger.
// Logs go to stderr so the stdio MCP transport stays clean.
func SetupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
