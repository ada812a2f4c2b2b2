package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aegnt-unltd/pkg/log"
)

// Manager runs the deep tier's plan generation across providers in priority
// order, retrying each and falling back on failure.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // Global timeout for entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{}
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// Primary returns "name/model" of the highest-priority provider, or "" when
// none is configured.
func (m *Manager) Primary() string {
	if len(m.providers) == 0 {
		return ""
	}
	return describe(m.providers[0])
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	// Create context with global timeout for entire fallback chain
	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	// Iterate through providers in priority order
	for _, provider := range m.providers {
		// Check if context is already cancelled (timeout exceeded)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), ctx.Err())
		default:
		}

		resp, attempts, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, req, resp, attempts)
			return resp, nil
		}

		err = asProviderError(provider, attempts, err)
		m.logFailure(ctx, provider, req, err)
		lastErr = err

		// If fallback is disabled, stop after first provider
		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry retries one provider with a linearly growing delay. It
// returns the number of attempts made.
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, int, error) {
	attempts := max(m.config.RetryAttempts, 1)
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, attempt, ctx.Err()
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil && (resp == nil || strings.TrimSpace(resp.Content.Text()) == "") {
			err = ErrEmptyContent
		}
		if err == nil {
			return resp, attempt + 1, nil
		}

		lastErr = err
		if !Retryable(err) {
			return nil, attempt + 1, err
		}
	}

	return nil, attempts, lastErr
}

// asProviderError tags err with the provider and attempt count, reusing the
// adapter's ProviderError when there is one.
func asProviderError(provider Provider, attempts int, err error) error {
	var pe *ProviderError
	if errors.As(err, &pe) {
		pe.Attempts = attempts
		return err
	}
	return &ProviderError{Provider: provider.Name(), Attempts: attempts, Err: err}
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, req *Request, resp *Response, attempts int) {
	usage := resp.Usage
	if usage == nil {
		usage = &Usage{}
	}
	m.logger.Infof(ctx, "%s: generation succeeded purpose=%s provider=%s attempts=%d input_tokens=%d output_tokens=%d",
		LogPrefixManager, purpose(req), describe(provider), attempts, usage.InputTokens, usage.OutputTokens)
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, req *Request, err error) {
	m.logger.Warnf(ctx, "%s: generation failed purpose=%s provider=%s: %v", LogPrefixManager, purpose(req), describe(provider), err)
}

func purpose(req *Request) string {
	if req == nil || req.Purpose == "" {
		return "unspecified"
	}
	return req.Purpose
}
