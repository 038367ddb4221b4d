// Package config provides configuration management for the application.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Default spreadsheet target. The ID and tab name identify the shared lead
// sheet; appended phone numbers land in the first column.
const (
	DefaultSpreadsheetID = "1kQzXvH3rT8mJc4aYtWpLnB6dFgE9sROiu2UM5xeChDo"
	DefaultSheetName     = "Leads"
)

// Config holds all configuration values for the application.
type Config struct {
	// Google Sheets
	GoogleCredentialsJSON string
	GoogleClientEmail     string
	GooglePrivateKey      string
	SpreadsheetID         string
	SheetName             string

	// Downstream webhook
	WebhookURL string

	// AWS
	AWSRegion string
	S3Bucket  string

	// SES
	SESSenderEmail  string
	LeadNotifyEmail string

	// Application
	Stage    string
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// Google Sheets
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleClientEmail:     getEnv("GOOGLE_CLIENT_EMAIL", ""),
		GooglePrivateKey:      getEnv("GOOGLE_PRIVATE_KEY", ""),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", DefaultSpreadsheetID),
		SheetName:             getEnv("SHEET_NAME", DefaultSheetName),

		// Downstream webhook
		WebhookURL: getEnv("LEAD_WEBHOOK_URL", ""),

		// AWS
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:  getEnv("S3_BUCKET", ""),

		// SES
		SESSenderEmail:  getEnv("SES_SENDER_EMAIL", ""),
		LeadNotifyEmail: getEnv("LEAD_NOTIFY_EMAIL", ""),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
