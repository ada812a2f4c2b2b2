package deep

import (
	"aegnt-unltd/internal/grounding"
	"aegnt-unltd/internal/knowledge"
	"aegnt-unltd/internal/tier"
	"aegnt-unltd/pkg/log"
)

// Executor is the deep_mind tier.
type Executor struct {
	l           log.Logger
	retriever   knowledge.Retriever
	grounder    grounding.Grounder
	generator   Generator
	maxPassages int
}

var _ tier.Executor = (*Executor)(nil)

// New creates the deep tier. A nil retriever skips knowledge lookup, a nil
// grounder uses the built-in constitution, and a nil generator writes the
// template plan.
func New(l log.Logger, retriever knowledge.Retriever, grounder grounding.Grounder, generator Generator, maxPassages int) *Executor {
	if grounder == nil {
		grounder = grounding.New("")
	}
	if generator == nil {
		generator = NewTemplateGenerator(DefaultTemplateModel)
	}
	if maxPassages <= 0 {
		maxPassages = knowledge.DefaultMaxPassages
	}
	return &Executor{
		l:           l,
		retriever:   retriever,
		grounder:    grounder,
		generator:   generator,
		maxPassages: maxPassages,
	}
}

// Name returns the tier label.
func (e *Executor) Name() string {
	return tier.SystemDeepMind
}
