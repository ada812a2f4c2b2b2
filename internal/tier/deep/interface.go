package deep

import (
	"context"

	"aegnt-unltd/internal/grounding"
	"aegnt-unltd/internal/knowledge"
)

// Prompt is everything the slow model is given to write a plan.
type Prompt struct {
	System     string
	Input      string
	Passages   []knowledge.Passage
	Principles []grounding.Principle
}

// Generation is a generated plan and the model that wrote it.
type Generation struct {
	Content string
	Model   string
}

// Generator writes the plan.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (Generation, error)
}
