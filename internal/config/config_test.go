package config

import (
	"errors"
	"testing"
	"time"

	"github.com/pricofy/emotion-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NLU_API_KEY", "nlu-key")
	t.Setenv("NLU_URL", "https://nlu.example.com/")
	t.Setenv("DB_ENDPOINT", "http://localhost:8000")
	t.Setenv("DB_PROJECT_ID", "project")
	t.Setenv("DB_API_KEY", "db-key")
	t.Setenv("DB_DATABASE_ID", "surveys")
	t.Setenv("DB_COLLECTION_ID", "analyses")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"NLU_PROVIDER", "NLU_LANGUAGE", "MIN_TEXT_LENGTH", "NLU_TIMEOUT", "DB_DRIVER", "APP_ENV", "HTTP_ADDR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderWatson, cfg.NLUProvider)
	assert.Equal(t, "https://nlu.example.com", cfg.NLUURL)
	assert.Equal(t, "en", cfg.NLULanguage)
	assert.Equal(t, 8, cfg.MinTextLength)
	assert.Equal(t, 10*time.Second, cfg.NLUTimeout)
	assert.Equal(t, DriverDynamoDB, cfg.DBDriver)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("NLU_LANGUAGE", "es")
	t.Setenv("MIN_TEXT_LENGTH", "12")
	t.Setenv("NLU_TIMEOUT", "3s")
	t.Setenv("DB_DRIVER", "Mongo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "es", cfg.NLULanguage)
	assert.Equal(t, 12, cfg.MinTextLength)
	assert.Equal(t, 3*time.Second, cfg.NLUTimeout)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("MIN_TEXT_LENGTH", "abc")
	t.Setenv("NLU_TIMEOUT", "-1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MinTextLength)
	assert.Equal(t, 10*time.Second, cfg.NLUTimeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("NLU_PROVIDER", "")
	t.Setenv("NLU_URL", "")
	t.Setenv("DB_API_KEY", "  ")

	_, err := Load()
	require.Error(t, err)

	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
	assert.Contains(t, err.Error(), "NLU_URL")
	assert.Contains(t, err.Error(), "DB_API_KEY")
	assert.NotContains(t, err.Error(), "NLU_API_KEY")
}

func TestLoad_VaderSkipsNLUCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("NLU_PROVIDER", "vader")
	t.Setenv("NLU_API_KEY", "")
	t.Setenv("NLU_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderVader, cfg.NLUProvider)
}

func TestLoad_UnknownValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown provider", "NLU_PROVIDER", "openai"},
		{"unknown driver", "DB_DRIVER", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	setRequired(t)
	t.Setenv("NLU_PROVIDER", "openai")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
	assert.Contains(t, err.Error(), `unknown NLU_PROVIDER "openai"`)
	assert.Contains(t, err.Error(), `unknown DB_DRIVER "sqlite"`)
	assert.Contains(t, err.Error(), "DB_API_KEY")
}
