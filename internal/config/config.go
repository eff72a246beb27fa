package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/01infinito/facturacion-api/internal/logger"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Database configuration
	DatabaseURL string

	// PDF issuer overrides (blank keeps the built-in identity block)
	IssuerLines   []string
	IssuerContact string

	// Draft notes override, one line per element (blank keeps the
	// built-in bank-details block)
	DraftNotes []string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	logDefaults := logger.DefaultConfig()

	config := &Config{
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 30)) * time.Second,

		LogLevel:  getEnvString("LOG_LEVEL", logDefaults.Level),
		LogFormat: getEnvString("LOG_FORMAT", logDefaults.Format),

		DatabaseURL: os.Getenv("POSTGRES_DB_URL"),

		IssuerLines:   getEnvStringSlice("PDF_ISSUER_LINES", nil),
		IssuerContact: os.Getenv("PDF_ISSUER_CONTACT"),

		DraftNotes: getEnvStringSlice("INVOICE_DRAFT_NOTES", nil),
	}

	validateConfig(config)
	return config, nil
}

// validateConfig checks critical configuration values and logs
// warnings when they're missing
func validateConfig(config *Config) {
	if config.DatabaseURL == "" {
		log.Warn().Msg("POSTGRES_DB_URL is not set, database connections will fail")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).
			Msgf("invalid value, using default %d", defaultValue)
		return defaultValue
	}
	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a pipe-separated
// environment variable (lines may contain commas)
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, "|")
}
