package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the frontend.
type Config struct {
	// Server Configuration
	Server ServerConfig

	// Backend API Configuration
	API APIConfig

	// Session cookie Configuration
	Session SessionConfig

	// Logging Configuration
	Logging LoggingConfig
}

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string // extra origins allowed to call the frontend; empty means same-origin only
}

// APIConfig holds the backend API location.
type APIConfig struct {
	BaseURL string
}

// SessionConfig holds session cookie configuration.
type SessionConfig struct {
	Secret string        // HMAC secret signing the user cookie
	TTL    time.Duration // cookie lifetime
	Secure bool          // restrict cookies to HTTPS
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Backend API - default to the local development backend
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:5000"
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			return nil, fmt.Errorf("SESSION_SECRET is required in release mode")
		}
		sessionSecret = "dev-only-session-secret"
	}

	sessionTTL := 72 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		sessionTTL = ttl
	}

	var allowedOrigins []string
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	// Logging configuration - defaults suitable for production
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Server: ServerConfig{
			Port:           port,
			AllowedOrigins: allowedOrigins,
		},
		API: APIConfig{
			BaseURL: apiBaseURL,
		},
		Session: SessionConfig{
			Secret: sessionSecret,
			TTL:    sessionTTL,
			Secure: os.Getenv("COOKIE_SECURE") == "true",
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
