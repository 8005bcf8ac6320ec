package app

import (
	"context"
	"errors"
	"testing"

	"github.com/pricofy/emotion-analyzer/internal/config"
	"github.com/pricofy/emotion-analyzer/internal/domain"
	"github.com/pricofy/emotion-analyzer/internal/handler"
	"github.com/pricofy/emotion-analyzer/internal/nlu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalyzer(t *testing.T) {
	tests := []struct {
		provider    string
		model       string
		expectError bool
	}{
		{config.ProviderWatson, nlu.ModelWatson, false},
		{config.ProviderVader, nlu.ModelVader, false},
		{"openai", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			a, err := NewAnalyzer(config.Config{NLUProvider: tt.provider, NLUURL: "https://nlu.example.com"})
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.model, a.Model())
		})
	}
}

func TestBuild_UnknownDriver(t *testing.T) {
	_, err := Build(context.Background(), config.Config{NLUProvider: config.ProviderVader, DBDriver: "sqlite"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
}

func TestFromEnv_MissingConfiguration(t *testing.T) {
	for _, key := range []string{"NLU_API_KEY", "NLU_URL", "DB_ENDPOINT", "DB_PROJECT_ID", "DB_API_KEY", "DB_DATABASE_ID", "DB_COLLECTION_ID", "NLU_PROVIDER", "DB_DRIVER"} {
		t.Setenv(key, "")
	}

	_, err := FromEnv(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
}

func TestLazy_BuildsOnce(t *testing.T) {
	calls := 0
	want := handler.New(handler.Deps{})
	l := NewLazy(func(ctx context.Context) (*handler.Handler, error) {
		calls++
		return want, nil
	})

	for i := 0; i < 3; i++ {
		h, err := l.Get(context.Background())
		require.NoError(t, err)
		assert.Same(t, want, h)
	}
	assert.Equal(t, 1, calls)
}

func TestLazy_RetriesFailedBuild(t *testing.T) {
	calls := 0
	want := handler.New(handler.Deps{})
	l := NewLazy(func(ctx context.Context) (*handler.Handler, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("failed to load AWS config: dial tcp: i/o timeout")
		}
		return want, nil
	})

	_, err := l.Get(context.Background())
	require.Error(t, err)

	h, err := l.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, h)

	h, err = l.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, h)
	assert.Equal(t, 2, calls)
}

func TestLazy_ConfigurationErrorFailsEveryCall(t *testing.T) {
	calls := 0
	l := NewLazy(func(ctx context.Context) (*handler.Handler, error) {
		calls++
		return nil, domain.ErrConfigurationMissing
	})

	for i := 0; i < 2; i++ {
		h, err := l.Get(context.Background())
		assert.Nil(t, h)
		assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
	}
	assert.Equal(t, 2, calls)
}
