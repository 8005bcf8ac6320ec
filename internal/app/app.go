// Package app wires configuration, clients and the handler together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pricofy/emotion-analyzer/internal/config"
	"github.com/pricofy/emotion-analyzer/internal/domain"
	"github.com/pricofy/emotion-analyzer/internal/handler"
	"github.com/pricofy/emotion-analyzer/internal/nlu"
	"github.com/pricofy/emotion-analyzer/internal/retry"
	"github.com/pricofy/emotion-analyzer/internal/store"
)

// BuildFunc constructs a Handler.
type BuildFunc func(ctx context.Context) (*handler.Handler, error)

// FromEnv loads configuration from the environment and builds a Handler.
func FromEnv(ctx context.Context) (*handler.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg)
}

// Build constructs the NLU analyzer and store for cfg and returns a Handler using them.
func Build(ctx context.Context, cfg config.Config) (*handler.Handler, error) {
	analyzer, err := NewAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	slog.Info("[App] Handler ready",
		slog.String("model", analyzer.Model()),
		slog.String("driver", cfg.DBDriver),
		slog.Int("minTextLength", cfg.MinTextLength))

	return handler.New(handler.Deps{
		Analyzer:      analyzer,
		Store:         s,
		Policy:        retry.DefaultPolicy,
		MinTextLength: cfg.MinTextLength,
	}), nil
}

// NewAnalyzer returns the analyzer selected by cfg.NLUProvider.
func NewAnalyzer(cfg config.Config) (nlu.Analyzer, error) {
	switch cfg.NLUProvider {
	case config.ProviderWatson:
		return nlu.NewClient(nlu.ClientConfig{
			BaseURL:  cfg.NLUURL,
			APIKey:   cfg.NLUAPIKey,
			Language: cfg.NLULanguage,
			Timeout:  cfg.NLUTimeout,
		}), nil
	case config.ProviderVader:
		return nlu.NewVader(), nil
	default:
		return nil, fmt.Errorf("%w: unknown NLU_PROVIDER %q", domain.ErrConfigurationMissing, cfg.NLUProvider)
	}
}

// Lazy builds the handler on first use and reuses it for the life of the
// process. A failed build is not kept: the next call builds again.
type Lazy struct {
	mu      sync.Mutex
	build   BuildFunc
	handler *handler.Handler
}

// NewLazy creates a new Lazy.
func NewLazy(build BuildFunc) *Lazy {
	return &Lazy{build: build}
}

// Get returns the handler, building it if needed.
func (l *Lazy) Get(ctx context.Context) (*handler.Handler, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handler != nil {
		return l.handler, nil
	}

	h, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	l.handler = h
	return h, nil
}
