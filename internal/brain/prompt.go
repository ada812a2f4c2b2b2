package brain

import (
	"context"
	"fmt"
	"os"
)

// LoadSystemPrompt replaces the system prompt with the contents of path.
// On failure the previous prompt is kept and the error wraps
// ErrSystemPromptLoad.
func (b *Brain) LoadSystemPrompt(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSystemPromptLoad, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSystemPromptLoad, err)
	}

	b.mu.Lock()
	b.systemPrompt = string(data)
	b.mu.Unlock()

	b.l.Infof(ctx, "%s: loaded %d byte(s) from %s", LogPrefixPrompt, len(data), path)
	return nil
}

// SystemPrompt returns the current prompt.
func (b *Brain) SystemPrompt() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.systemPrompt
}
