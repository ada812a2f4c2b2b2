package fast

import (
	"context"
	"time"

	"aegnt-unltd/internal/tier"
	"aegnt-unltd/pkg/log"
)

// LocalModel is a low-latency completion backend, usually a local ollama.
type LocalModel interface {
	Complete(ctx context.Context, system, input string) (string, error)
}

// Executor is the cortex tier. It never fails: the templated
// acknowledgement is the floor for every request.
type Executor struct {
	model  LocalModel
	budget time.Duration
	l      log.Logger
}

var _ tier.Executor = (*Executor)(nil)

// New creates the fast executor. model may be nil, in which case every
// request is answered from the template. A non-positive budget uses
// DefaultBudget.
func New(l log.Logger, model LocalModel, budget time.Duration) *Executor {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Executor{
		model:  model,
		budget: budget,
		l:      l,
	}
}

// Name returns the tier label.
func (e *Executor) Name() string {
	return tier.SystemCortex
}

// Budget returns the local model deadline.
func (e *Executor) Budget() time.Duration {
	return e.budget
}
