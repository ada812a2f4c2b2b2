package brain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"aegnt-unltd/internal/router"
	"aegnt-unltd/internal/tier"
	"aegnt-unltd/pkg/log"
)

// ProcessDirective classifies input, runs it on the matching tier and
// applies the degrade policy to failures. It always returns a Response.
func (b *Brain) ProcessDirective(ctx context.Context, input string) Response {
	start := time.Now()

	requestID := log.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = log.WithRequestID(ctx, requestID)
	}

	intent := b.classifier.Classify(input)
	req := tier.Request{
		Input:        input,
		Intent:       string(intent),
		SystemPrompt: b.SystemPrompt(),
	}

	var res tier.Result
	switch intent {
	case router.IntentStrategy:
		res = b.runDeep(ctx, req)
	default:
		res = b.fast.Execute(ctx, req)
		if res.Status == tier.StatusDegraded {
			b.metrics.IncFastFallback()
		}
	}

	if res.Status == tier.StatusFailed {
		stage := FailedStage(res.Err)
		b.l.Warnf(ctx, "%s: %s failed at %s, applying %s policy: %v",
			LogPrefixProcess, res.System, stage, b.policy.Name(), res.Err)
		b.metrics.IncDegrade(res.System, stage)
		res = b.policy.Degrade(ctx, b.fast, req, res)
	}

	elapsed := time.Since(start)
	resp := Response{
		Intent:    intent,
		System:    res.System,
		Content:   res.Content,
		LatencyMS: elapsed.Milliseconds(),
		Degraded:  res.Status != tier.StatusSucceeded,
		RequestID: requestID,
	}
	if res.System == tier.SystemDeepMind {
		resp.Trace = res.Trace
	}

	b.metrics.ObserveDispatch(string(intent), resp.System, elapsed)
	b.l.Infof(ctx, "%s: intent=%s system=%s degraded=%t latency_ms=%d",
		LogPrefixProcess, intent, resp.System, resp.Degraded, resp.LatencyMS)
	return resp
}

// runDeep bounds the deep tier by DeepTimeout. An executor that overruns the
// deadline or panics is reported as a failed result.
func (b *Brain) runDeep(ctx context.Context, req tier.Request) tier.Result {
	b.metrics.DeepInFlight(1)
	defer b.metrics.DeepInFlight(-1)

	ctx, cancel := context.WithTimeout(ctx, b.cfg.DeepTimeout)
	defer cancel()

	done := make(chan tier.Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- tier.Fail(tier.SystemDeepMind, "panic", nil, fmt.Errorf("deep tier panic: %v", r))
			}
		}()
		done <- b.deep.Execute(ctx, req)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return tier.Fail(tier.SystemDeepMind, "timeout", nil, ctx.Err())
	}
}
