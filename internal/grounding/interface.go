package grounding

import "context"

// Grounder selects the principles a directive must respect.
type Grounder interface {
	Ground(ctx context.Context, input string) (Report, error)
}
