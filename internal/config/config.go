// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Google Sheets backing store
	SheetID            string
	ServiceAccountMail string
	ServiceAccountKey  string // PEM private key
	PostsTab           string
	AdminsTab          string

	// Session token signing
	SessionSecret string

	// Optional initial admin seeded at startup when the Admins tab has no
	// active account.
	AdminSeedEmail    string
	AdminSeedPassword string
}

// Load reads configuration from environment variables. The spreadsheet
// identifier, service-account credentials, and session secret have no sane
// defaults; a missing value is a startup failure, never a per-request one.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		SheetID:            os.Getenv("GOOGLE_SHEET_ID"),
		ServiceAccountMail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		ServiceAccountKey:  normalizePrivateKey(os.Getenv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY")),
		PostsTab:           envOrDefault("SHEETS_POSTS_TAB", "Posts"),
		AdminsTab:          envOrDefault("SHEETS_ADMINS_TAB", "Admins"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		AdminSeedEmail:    os.Getenv("ADMIN_SEED_EMAIL"),
		AdminSeedPassword: os.Getenv("ADMIN_SEED_PASSWORD"),
	}

	for _, req := range []struct{ name, value string }{
		{"GOOGLE_SHEET_ID", cfg.SheetID},
		{"GOOGLE_SERVICE_ACCOUNT_EMAIL", cfg.ServiceAccountMail},
		{"GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY", cfg.ServiceAccountKey},
		{"SESSION_SECRET", cfg.SessionSecret},
	} {
		if req.value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", req.name)
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// normalizePrivateKey converts escaped newline sequences to real newlines.
// Deployment dashboards often store multi-line PEM keys as a single line
// containing literal "\n".
func normalizePrivateKey(key string) string {
	key = strings.ReplaceAll(key, `\n`, "\n")
	key = strings.ReplaceAll(key, `\r`, "\r")
	return strings.TrimSpace(key)
}
