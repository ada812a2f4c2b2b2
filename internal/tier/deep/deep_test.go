package deep

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegnt-unltd/internal/grounding"
	"aegnt-unltd/internal/knowledge"
	"aegnt-unltd/internal/tier"
	"aegnt-unltd/pkg/llmprovider"
	"aegnt-unltd/pkg/log"
)

type stubRetriever struct {
	passages []knowledge.Passage
	err      error
	delay    time.Duration
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, limit int) ([]knowledge.Passage, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.passages, s.err
}

func (s *stubRetriever) Location() string { return "./knowledge" }

type panicRetriever struct{}

func (panicRetriever) Retrieve(context.Context, string, int) ([]knowledge.Passage, error) {
	var hits []knowledge.Passage
	_ = hits[0]
	return hits, nil
}

func (panicRetriever) Location() string { return "./knowledge" }

type panicGrounder struct{}

func (panicGrounder) Ground(context.Context, string) (grounding.Report, error) {
	panic("constitution index corrupted")
}

type stubGrounder struct {
	report grounding.Report
	err    error
}

func (s *stubGrounder) Ground(ctx context.Context, input string) (grounding.Report, error) {
	return s.report, s.err
}

type stubGenerator struct {
	gen  Generation
	err  error
	got  Prompt
	hits int
}

func (s *stubGenerator) Generate(ctx context.Context, p Prompt) (Generation, error) {
	s.hits++
	s.got = p
	return s.gen, s.err
}

func strategyRequest() tier.Request {
	return tier.Request{Input: "Build a pricing strategy for Q3", Intent: "Strategy", SystemPrompt: "persona"}
}

func TestExecute_TemplatePlan(t *testing.T) {
	r := &stubRetriever{passages: []knowledge.Passage{
		{Source: "pricing.md", Text: "a"},
		{Source: "pricing.md", Text: "b"},
		{Source: "q3.txt", Text: "c"},
	}}
	e := New(log.NewNop(), r, nil, NewTemplateGenerator("gemini-2.0-flash-thinking"), 0)

	res := e.Execute(context.Background(), strategyRequest())

	require.NoError(t, res.Err)
	assert.Equal(t, tier.SystemDeepMind, res.System)
	assert.Equal(t, tier.StatusSucceeded, res.Status)
	assert.Equal(t, "[DEEP] Analyzing strategy for: Build a pricing strategy for Q3\n\nSources:\n- pricing.md\n- q3.txt", res.Content)
	assert.Equal(t, []string{StageClassify, StageKnowledge, StageGrounding, StageGenerate}, res.Trace.Names())
	assert.Equal(t, "classified as Strategy", res.Trace[0].Detail)
	assert.Equal(t, "loaded 3 passage(s) from ./knowledge", res.Trace[1].Detail)
	assert.True(t, strings.HasPrefix(res.Trace[2].Detail, "grounded against aegnt constitution ("))
	assert.Equal(t, "generated plan with gemini-2.0-flash-thinking", res.Trace[3].Detail)
}

func TestExecute_WithoutRetriever(t *testing.T) {
	gen := &stubGenerator{gen: Generation{Content: "plan", Model: "m"}}
	e := New(log.NewNop(), nil, nil, gen, 0)

	res := e.Execute(context.Background(), strategyRequest())

	require.NoError(t, res.Err)
	assert.Equal(t, "no knowledge source available, 0 passage(s)", res.Trace[1].Detail)
	assert.Empty(t, gen.got.Passages)
	assert.Equal(t, "persona", gen.got.System)
	assert.NotEmpty(t, gen.got.Principles)
}

func TestExecute_StageFailures(t *testing.T) {
	tests := []struct {
		name      string
		retriever knowledge.Retriever
		grounder  grounding.Grounder
		generator *stubGenerator
		stage     string
		sentinel  error
		traceLen  int
	}{
		{
			name:      "knowledge unavailable",
			retriever: &stubRetriever{err: knowledge.ErrUnavailable},
			generator: &stubGenerator{gen: Generation{Content: "x"}},
			stage:     StageKnowledge,
			sentinel:  knowledge.ErrUnavailable,
			traceLen:  1,
		},
		{
			name:      "grounding unavailable",
			grounder:  &stubGrounder{err: grounding.ErrUnavailable},
			generator: &stubGenerator{gen: Generation{Content: "x"}},
			stage:     StageGrounding,
			sentinel:  grounding.ErrUnavailable,
			traceLen:  1,
		},
		{
			name:      "retriever panics",
			retriever: panicRetriever{},
			generator: &stubGenerator{gen: Generation{Content: "x"}},
			stage:     StageKnowledge,
			sentinel:  ErrPanic,
			traceLen:  1,
		},
		{
			name:      "grounder panics",
			grounder:  panicGrounder{},
			generator: &stubGenerator{gen: Generation{Content: "x"}},
			stage:     StageGrounding,
			sentinel:  ErrPanic,
			traceLen:  1,
		},
		{
			name:      "generator error",
			generator: &stubGenerator{err: llmprovider.ErrAllProvidersFailed},
			stage:     StageGenerate,
			sentinel:  llmprovider.ErrAllProvidersFailed,
			traceLen:  3,
		},
		{
			name:      "empty plan",
			generator: &stubGenerator{gen: Generation{Content: "  ", Model: "m"}},
			stage:     StageGenerate,
			sentinel:  ErrGeneration,
			traceLen:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(log.NewNop(), tt.retriever, tt.grounder, tt.generator, 0)

			res := e.Execute(context.Background(), strategyRequest())

			assert.Equal(t, tier.StatusFailed, res.Status)
			assert.Equal(t, tier.SystemDeepMind, res.System)
			assert.Empty(t, res.Content)
			assert.Len(t, res.Trace, tt.traceLen)
			assert.ErrorIs(t, res.Err, tt.sentinel)

			var te *tier.Error
			require.ErrorAs(t, res.Err, &te)
			assert.Equal(t, tt.stage, te.Stage)
			assert.Equal(t, tier.SystemDeepMind, te.Tier)
		})
	}
}

func TestExecute_DeadlineFailsKnowledgeStage(t *testing.T) {
	gen := &stubGenerator{gen: Generation{Content: "x"}}
	e := New(log.NewNop(), &stubRetriever{delay: time.Second}, nil, gen, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res := e.Execute(ctx, strategyRequest())

	assert.Equal(t, tier.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.Zero(t, gen.hits)
}

func TestExecute_VerifyFlagsForbiddenTerms(t *testing.T) {
	gen := &stubGenerator{gen: Generation{Content: "Cut prices, it is risk-free.", Model: "m"}}
	e := New(log.NewNop(), nil, nil, gen, 0)

	res := e.Execute(context.Background(), strategyRequest())

	require.NoError(t, res.Err)
	assert.Equal(t, StageVerify, res.Trace[len(res.Trace)-1].Name)
	assert.Contains(t, res.Content, "NOTE: verify this plan against aegnt constitution")
}

type stubLLM struct {
	req  *llmprovider.Request
	resp *llmprovider.Response
	err  error
}

func (s *stubLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	s.req = req
	return s.resp, s.err
}

func TestLLMGenerator(t *testing.T) {
	llm := &stubLLM{resp: &llmprovider.Response{
		Content:      llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: "Step 1"}, {Text: "Step 2"}}},
		ProviderName: "gemini",
		ModelName:    "gemini-2.5-flash",
	}}
	g := NewLLMGenerator(llm, 0.4, 1024)

	got, err := g.Generate(context.Background(), Prompt{
		System:     "persona",
		Input:      "Build a pricing strategy",
		Passages:   []knowledge.Passage{{Source: "q3.txt", Text: "protect margin"}},
		Principles: []grounding.Principle{{ID: "pricing", Text: "state margin impact"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Step 1\nStep 2", got.Content)
	assert.Equal(t, "gemini/gemini-2.5-flash", got.Model)
	assert.Equal(t, "deep_mind/generate", llm.req.Purpose)
	assert.Equal(t, 0.4, llm.req.Temperature)
	assert.Equal(t, 1024, llm.req.MaxTokens)

	system := llm.req.SystemInstruction.Parts[0].Text
	assert.True(t, strings.HasPrefix(system, "persona\n\n"))
	assert.Contains(t, system, "- [pricing] state margin impact")

	user := llm.req.Messages[0].Parts[0].Text
	assert.Contains(t, user, "(q3.txt)\nprotect margin")
	assert.True(t, strings.HasSuffix(user, "Directive: Build a pricing strategy"))
}

func TestLLMGenerator_Error(t *testing.T) {
	g := NewLLMGenerator(&stubLLM{err: errors.New("quota")}, 0, 0)

	_, err := g.Generate(context.Background(), Prompt{Input: "x"})
	assert.EqualError(t, err, "quota")
}
