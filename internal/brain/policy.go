package brain

import (
	"context"
	"errors"
	"fmt"

	"aegnt-unltd/internal/tier"
)

// DegradePolicy turns a failed tier result into the result the caller sees.
type DegradePolicy interface {
	Name() string
	Degrade(ctx context.Context, fast tier.Executor, req tier.Request, failed tier.Result) tier.Result
}

// ParsePolicy maps a config value to a policy.
func ParsePolicy(name string) (DegradePolicy, error) {
	switch name {
	case "", PolicyFallback:
		return FallbackPolicy{}, nil
	case PolicyReport:
		return ReportPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// FallbackPolicy answers on the fast tier and labels the response
// cortex_fallback.
type FallbackPolicy struct{}

func (FallbackPolicy) Name() string { return PolicyFallback }

func (FallbackPolicy) Degrade(ctx context.Context, fast tier.Executor, req tier.Request, failed tier.Result) tier.Result {
	res := fast.Execute(ctx, req)
	res.System = SystemCortexFallback
	res.Trace = nil
	res.Status = tier.StatusDegraded
	res.Err = failed.Err
	return res
}

// ReportPolicy keeps the failing tier's label and trace and replaces the
// content with a failure notice.
type ReportPolicy struct{}

func (ReportPolicy) Name() string { return PolicyReport }

func (ReportPolicy) Degrade(ctx context.Context, fast tier.Executor, req tier.Request, failed tier.Result) tier.Result {
	stage := FailedStage(failed.Err)
	trace := append(tier.Trace(nil), failed.Trace...)
	trace = append(trace, tier.Stage{Name: stage, Detail: fmt.Sprintf("%s failed: %v", stage, rootCause(failed.Err))})

	return tier.Result{
		System:  failed.System,
		Content: fmt.Sprintf(ReportContent, req.Input, stage),
		Trace:   trace,
		Status:  tier.StatusDegraded,
		Err:     failed.Err,
	}
}

// FailedStage names the stage recorded in a *tier.Error, or "unknown".
func FailedStage(err error) string {
	var te *tier.Error
	if errors.As(err, &te) && te.Stage != "" {
		return te.Stage
	}
	return "unknown"
}

func rootCause(err error) error {
	var te *tier.Error
	if errors.As(err, &te) && te.Err != nil {
		return te.Err
	}
	return err
}
