package http

import (
	"errors"
	"fmt"

	"aegnt-unltd/internal/brain"
)

var (
	errInputRequired       = errors.New("input is required")
	errPromptNotConfigured = errors.New("system prompt path is not configured")
)

// mapError turns dispatcher errors into client-facing ones. Unknown errors
// pass through unchanged.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, brain.ErrSystemPromptLoad):
		return fmt.Errorf("cannot reload system prompt from %s", h.promptPath)
	default:
		return err
	}
}
