// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pricofy/emotion-analyzer/internal/domain"
	"github.com/pricofy/emotion-analyzer/internal/textbounds"
	"github.com/subosito/gotenv"
)

// NLU providers.
const (
	ProviderWatson = "watson"
	ProviderVader  = "vader"
)

// Database drivers.
const (
	DriverDynamoDB = "dynamodb"
	DriverMongo    = "mongo"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Env      string
	HTTPAddr string

	NLUProvider string
	NLUAPIKey   string
	NLUURL      string
	NLULanguage string
	NLUTimeout  time.Duration

	MinTextLength int

	DBDriver       string
	DBEndpoint     string
	DBProjectID    string
	DBAPIKey       string
	DBDatabaseID   string
	DBCollectionID string
}

// LoadEnv reads config/envs/.env.<env> into the process environment if it exists.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Debug("[Config] No .env file found, using OS environment", slog.String("file", envFile))
	}
}

// Load reads environment variables and returns a fully populated Config.
// Every missing required value and unknown selector is reported in a single
// ErrConfigurationMissing.
func Load() (Config, error) {
	cfg := Config{
		Env:            envOrDefault("APP_ENV", "dev"),
		HTTPAddr:       envOrDefault("HTTP_ADDR", ":8080"),
		NLUProvider:    strings.ToLower(envOrDefault("NLU_PROVIDER", ProviderWatson)),
		NLUAPIKey:      env("NLU_API_KEY"),
		NLUURL:         strings.TrimRight(env("NLU_URL"), "/"),
		NLULanguage:    envOrDefault("NLU_LANGUAGE", "en"),
		NLUTimeout:     durationOrDefault("NLU_TIMEOUT", 10*time.Second),
		MinTextLength:  intOrDefault("MIN_TEXT_LENGTH", textbounds.DefaultMinChars),
		DBDriver:       strings.ToLower(envOrDefault("DB_DRIVER", DriverDynamoDB)),
		DBEndpoint:     env("DB_ENDPOINT"),
		DBProjectID:    env("DB_PROJECT_ID"),
		DBAPIKey:       env("DB_API_KEY"),
		DBDatabaseID:   env("DB_DATABASE_ID"),
		DBCollectionID: env("DB_COLLECTION_ID"),
	}

	var problems []string
	require := func(key, value string) {
		if value == "" {
			problems = append(problems, key)
		}
	}

	switch cfg.NLUProvider {
	case ProviderWatson:
		require("NLU_API_KEY", cfg.NLUAPIKey)
		require("NLU_URL", cfg.NLUURL)
	case ProviderVader:
	default:
		problems = append(problems, fmt.Sprintf("unknown NLU_PROVIDER %q", cfg.NLUProvider))
	}

	if cfg.DBDriver != DriverDynamoDB && cfg.DBDriver != DriverMongo {
		problems = append(problems, fmt.Sprintf("unknown DB_DRIVER %q", cfg.DBDriver))
	}
	require("DB_ENDPOINT", cfg.DBEndpoint)
	require("DB_PROJECT_ID", cfg.DBProjectID)
	require("DB_API_KEY", cfg.DBAPIKey)
	require("DB_DATABASE_ID", cfg.DBDatabaseID)
	require("DB_COLLECTION_ID", cfg.DBCollectionID)

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("%w: %s", domain.ErrConfigurationMissing, strings.Join(problems, ", "))
	}
	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOrDefault(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	raw := env(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("[Config] Ignoring invalid integer", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return v
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := env(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("[Config] Ignoring invalid duration", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return v
}
