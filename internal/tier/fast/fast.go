package fast

import (
	"context"
	"fmt"
	"strings"

	"aegnt-unltd/internal/tier"
)

// Execute answers req within the latency budget.
func (e *Executor) Execute(ctx context.Context, req tier.Request) tier.Result {
	if e.model == nil {
		return e.template(req.Input, tier.StatusSucceeded)
	}

	ctx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()

	out, err := e.complete(ctx, req)
	if err != nil {
		e.l.Warnf(ctx, "%s: local model unavailable, using template: %v", LogPrefixExecute, err)
		return e.template(req.Input, tier.StatusDegraded)
	}

	return tier.Result{
		System:  tier.SystemCortex,
		Content: out,
		Status:  tier.StatusSucceeded,
	}
}

// complete runs the model call and turns panics and blank output into errors
// so Execute has one fallback path.
func (e *Executor) complete(ctx context.Context, req tier.Request) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("local model panic: %v", r)
		}
	}()

	out, err = e.model.Complete(ctx, req.SystemPrompt, req.Input)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("local model returned empty content")
	}
	return out, nil
}

func (e *Executor) template(input string, status tier.Status) tier.Result {
	return tier.Result{
		System:  tier.SystemCortex,
		Content: fmt.Sprintf(TemplateContent, input),
		Status:  status,
	}
}
