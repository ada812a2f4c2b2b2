package llmprovider

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed means every provider in the chain was tried
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured means the manager has nothing to call
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrEmptyContent means a provider answered without any text. The deep
	// tier cannot use an empty plan, so the manager treats it as a failure
	// and falls through to the next provider.
	ErrEmptyContent = errors.New("provider returned empty content")
)

// ProviderError records which provider failed and after how many attempts.
type ProviderError struct {
	Provider string
	Attempts int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("provider %s (after %d attempts): %v", e.Provider, e.Attempts, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt on the same provider can help.
// Cancellation and deadline expiry end the chain for the caller too.
func Retryable(err error) bool {
	return err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
