package ai

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/specvet/specvet/pkg/domain/ai"
)

// ResilienceConfig tunes the retry/timeout wrapper around a provider.
type ResilienceConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultResilienceConfig suits interactive CLI use: a couple of quick
// retries under a hard two-minute ceiling.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxRetries: 2,
		RetryDelay: time.Second,
		Timeout:    120 * time.Second,
	}
}

// ResilientProvider wraps any Provider with retry and timeout. A
// timed-out call surfaces as an ordinary error, which the hybrid checks
// treat identically to backend unavailability.
type ResilientProvider struct {
	inner ai.Provider
	cfg   ResilienceConfig
}

func NewResilientProvider(inner ai.Provider) *ResilientProvider {
	return NewResilientProviderWithConfig(inner, DefaultResilienceConfig())
}

func NewResilientProviderWithConfig(inner ai.Provider, cfg ResilienceConfig) *ResilientProvider {
	defaults := DefaultResilienceConfig()
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaults.RetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	return &ResilientProvider{inner: inner, cfg: cfg}
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

func (p *ResilientProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	r := retry.New[*ai.CompletionResponse](retry.Config{
		MaxAttempts:   p.cfg.MaxRetries,
		InitialDelay:  p.cfg.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})

	t := timeout.New[*ai.CompletionResponse](timeout.Config{
		DefaultTimeout: p.cfg.Timeout,
	})

	return t.Execute(ctx, p.cfg.Timeout, func(ctx context.Context) (*ai.CompletionResponse, error) {
		return r.Do(ctx, func(ctx context.Context) (*ai.CompletionResponse, error) {
			return p.inner.Complete(ctx, req)
		})
	})
}
