// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetTokenTTL() time.Duration
	GetInvitationTokenTTL() time.Duration
	GetFrontendURL() string
}

// SocialAuthConfig provides OAuth client settings for social sign-in providers.
type SocialAuthConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleCallbackURL() string
	GetFacebookClientID() string
	GetFacebookClientSecret() string
	GetFacebookCallbackURL() string
	GetFrontendURL() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	EmailConfig
	GetFrontendURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	InvitationTokenTTL time.Duration
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	FrontendURL        string

	GoogleClientID       string
	GoogleClientSecret   string
	GoogleCallbackURL    string
	FacebookClientID     string
	FacebookClientSecret string
	FacebookCallbackURL  string

	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file in the working directory.
func Load() (*Config, error) {
	// Missing .env is fine in production where the environment is injected.
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("AUTH_JWT_SECRET"),
		TokenTTL:           getDuration("AUTH_TOKEN_TTL", 7*24*time.Hour),
		InvitationTokenTTL: getDuration("INVITATION_TOKEN_TTL", 7*24*time.Hour),
		CORSAllowAll:       getBool("CORS_ALLOW_ALL", false),
		CORSOrigins:        getList("CORS_ORIGINS"),
		CORSAllowCreds:     getBool("CORS_ALLOW_CREDENTIALS", true),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),

		GoogleClientID:       os.Getenv("AUTH_SOCIAL_GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("AUTH_SOCIAL_GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:    os.Getenv("AUTH_SOCIAL_GOOGLE_CALLBACK_URL"),
		FacebookClientID:     os.Getenv("AUTH_SOCIAL_FACEBOOK_CLIENT_ID"),
		FacebookClientSecret: os.Getenv("AUTH_SOCIAL_FACEBOOK_CLIENT_SECRET"),
		FacebookCallbackURL:  os.Getenv("AUTH_SOCIAL_FACEBOOK_CALLBACK_URL"),

		EmailEnabled:     getBool("EMAIL_ENABLED", false),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getInt("SMTP_PORT", 587),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Raally"),
		EmailFromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	return cfg, nil
}

// =============================================================================
// Interface implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string                 { return c.DatabaseURL }
func (c *Config) GetJWTSecret() string                   { return c.JWTSecret }
func (c *Config) GetTokenTTL() time.Duration             { return c.TokenTTL }
func (c *Config) GetInvitationTokenTTL() time.Duration   { return c.InvitationTokenTTL }
func (c *Config) GetFrontendURL() string                 { return c.FrontendURL }
func (c *Config) GetHTTPAddr() string                    { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool                  { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string               { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool                { return c.CORSAllowCreds }
func (c *Config) GetGoogleClientID() string              { return c.GoogleClientID }
func (c *Config) GetGoogleClientSecret() string          { return c.GoogleClientSecret }
func (c *Config) GetGoogleCallbackURL() string           { return c.GoogleCallbackURL }
func (c *Config) GetFacebookClientID() string            { return c.FacebookClientID }
func (c *Config) GetFacebookClientSecret() string        { return c.FacebookClientSecret }
func (c *Config) GetFacebookCallbackURL() string         { return c.FacebookCallbackURL }
func (c *Config) GetEmailEnabled() bool                  { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string                    { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                       { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string                { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string                { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string               { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string            { return c.EmailFromAddress }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
