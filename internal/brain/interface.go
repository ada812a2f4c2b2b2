package brain

import (
	"context"

	"aegnt-unltd/internal/router"
)

// Dispatcher classifies directives and routes them to a tier. Safe for
// concurrent use.
type Dispatcher interface {
	ProcessDirective(ctx context.Context, input string) Response
	LoadSystemPrompt(ctx context.Context, path string) error
	SystemPrompt() string
	Classify(input string) router.Intent
	Config() Config
}
