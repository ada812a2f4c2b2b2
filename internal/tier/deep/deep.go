package deep

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"aegnt-unltd/internal/grounding"
	"aegnt-unltd/internal/knowledge"
	"aegnt-unltd/internal/tier"
)

// Execute runs classify, knowledge and grounding (concurrently), then
// generate. Any failing stage ends the run with a failed Result whose trace
// stops at the last completed stage.
func (e *Executor) Execute(ctx context.Context, req tier.Request) tier.Result {
	trace := tier.Trace{{Name: StageClassify, Detail: "classified as " + req.Intent}}

	var (
		passages []knowledge.Passage
		report   grounding.Report
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(StageKnowledge, func() error {
		if e.retriever == nil {
			return nil
		}
		p, err := e.retriever.Retrieve(gctx, req.Input, e.maxPassages)
		if err != nil {
			return &tier.Error{Tier: tier.SystemDeepMind, Stage: StageKnowledge, Err: err}
		}
		passages = p
		return nil
	}))
	g.Go(guard(StageGrounding, func() error {
		r, err := e.grounder.Ground(gctx, req.Input)
		if err != nil {
			return &tier.Error{Tier: tier.SystemDeepMind, Stage: StageGrounding, Err: err}
		}
		report = r
		return nil
	}))
	if err := g.Wait(); err != nil {
		return e.fail(ctx, trace, err)
	}

	trace = append(trace,
		tier.Stage{Name: StageKnowledge, Detail: e.knowledgeDetail(len(passages))},
		tier.Stage{Name: StageGrounding, Detail: fmt.Sprintf("grounded against %s (%d principle(s))", report.Constitution, len(report.Principles))},
	)

	gen, err := e.generator.Generate(ctx, Prompt{
		System:     req.SystemPrompt,
		Input:      req.Input,
		Passages:   passages,
		Principles: report.Principles,
	})
	if err == nil && strings.TrimSpace(gen.Content) == "" {
		err = errors.New("empty plan")
	}
	if err != nil {
		return e.fail(ctx, trace, &tier.Error{
			Tier:  tier.SystemDeepMind,
			Stage: StageGenerate,
			Err:   fmt.Errorf("%w: %w", ErrGeneration, err),
		})
	}
	trace = append(trace, tier.Stage{Name: StageGenerate, Detail: "generated plan with " + gen.Model})

	content := gen.Content
	if found := report.Verify(content); len(found) > 0 {
		trace = append(trace, tier.Stage{
			Name:   StageVerify,
			Detail: fmt.Sprintf("flagged %d discrepancy(ies) against %s", len(found), report.Constitution),
		})
		content += "\n\n" + fmt.Sprintf(VerifyNote, report.Constitution)
	}

	return tier.Result{
		System:  tier.SystemDeepMind,
		Content: content,
		Trace:   trace,
		Status:  tier.StatusSucceeded,
	}
}

// guard turns a panic inside a concurrent stage into that stage's failure.
// The Brain only recovers panics on its own goroutine.
func guard(stage string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &tier.Error{Tier: tier.SystemDeepMind, Stage: stage, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()
		return fn()
	}
}

func (e *Executor) knowledgeDetail(n int) string {
	if e.retriever == nil {
		return "no knowledge source available, 0 passage(s)"
	}
	return fmt.Sprintf("loaded %d passage(s) from %s", n, e.retriever.Location())
}

func (e *Executor) fail(ctx context.Context, trace tier.Trace, err error) tier.Result {
	var te *tier.Error
	if !errors.As(err, &te) {
		te = &tier.Error{Tier: tier.SystemDeepMind, Stage: StageGenerate, Err: err}
	}
	e.l.Warnf(ctx, "%s: stage %s failed: %v", LogPrefixExecute, te.Stage, te.Err)
	return tier.Fail(tier.SystemDeepMind, te.Stage, trace, te.Err)
}
