package deep

import (
	"context"
	"fmt"
	"strings"

	"aegnt-unltd/internal/tier"
	"aegnt-unltd/pkg/llmprovider"
)

// TemplateGenerator writes a deterministic plan listing the retrieved
// sources. It stands in for the slow model when no provider is configured.
type TemplateGenerator struct {
	model string
}

var (
	_ Generator = (*TemplateGenerator)(nil)
	_ Generator = (*LLMGenerator)(nil)
)

// NewTemplateGenerator creates a template generator reporting model as the
// author.
func NewTemplateGenerator(model string) *TemplateGenerator {
	if model == "" {
		model = DefaultTemplateModel
	}
	return &TemplateGenerator{model: model}
}

func (g *TemplateGenerator) Generate(ctx context.Context, p Prompt) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, TemplateContent, p.Input)
	if sources := distinctSources(p); len(sources) > 0 {
		b.WriteString("\n\nSources:")
		for _, s := range sources {
			b.WriteString("\n- " + s)
		}
	}
	return Generation{Content: b.String(), Model: g.model}, nil
}

// ContentGenerator is the part of llmprovider.Manager the deep tier uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// LLMGenerator writes plans with the configured slow-model providers.
type LLMGenerator struct {
	llm         ContentGenerator
	temperature float64
	maxTokens   int
}

// NewLLMGenerator wraps a provider manager.
func NewLLMGenerator(llm ContentGenerator, temperature float64, maxTokens int) *LLMGenerator {
	return &LLMGenerator{llm: llm, temperature: temperature, maxTokens: maxTokens}
}

func (g *LLMGenerator) Generate(ctx context.Context, p Prompt) (Generation, error) {
	resp, err := g.llm.GenerateContent(ctx, &llmprovider.Request{
		Purpose:           tier.SystemDeepMind + "/" + StageGenerate,
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: systemInstruction(p)}},
		},
		Messages: []llmprovider.Message{{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: userMessage(p)}},
		}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return Generation{}, err
	}

	return Generation{
		Content: resp.Content.Text(),
		Model:   resp.ProviderName + "/" + resp.ModelName,
	}, nil
}

func systemInstruction(p Prompt) string {
	var b strings.Builder
	if p.System != "" {
		b.WriteString(p.System)
		b.WriteString("\n\n")
	}
	b.WriteString("You are a strategic advisor. Think step by step and answer with a concrete plan.")
	if len(p.Principles) > 0 {
		b.WriteString("\n\nThe plan must respect these principles:")
		for _, pr := range p.Principles {
			fmt.Fprintf(&b, "\n- [%s] %s", pr.ID, pr.Text)
		}
	}
	return b.String()
}

func userMessage(p Prompt) string {
	if len(p.Passages) == 0 {
		return p.Input
	}
	var b strings.Builder
	b.WriteString("Relevant knowledge:\n")
	for _, ps := range p.Passages {
		fmt.Fprintf(&b, "\n(%s)\n%s\n", ps.Source, ps.Text)
	}
	b.WriteString("\nDirective: ")
	b.WriteString(p.Input)
	return b.String()
}

func distinctSources(p Prompt) []string {
	seen := make(map[string]bool, len(p.Passages))
	var out []string
	for _, ps := range p.Passages {
		if !seen[ps.Source] {
			seen[ps.Source] = true
			out = append(out, ps.Source)
		}
	}
	return out
}
