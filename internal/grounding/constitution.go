package grounding

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConstitution []byte

// Default returns the built-in constitution.
func Default() *Constitution {
	c, err := Parse(defaultConstitution)
	if err != nil {
		panic(fmt.Sprintf("grounding: built-in constitution: %v", err))
	}
	return c
}

// Parse decodes a YAML constitution. Keywords and forbidden terms are
// lower-cased.
func Parse(data []byte) (*Constitution, error) {
	var c Constitution
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConstitution, err)
	}
	if len(c.Principles) == 0 {
		return nil, fmt.Errorf("%w: no principles", ErrInvalidConstitution)
	}

	seen := make(map[string]bool, len(c.Principles))
	for i := range c.Principles {
		p := &c.Principles[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || strings.TrimSpace(p.Text) == "" {
			return nil, fmt.Errorf("%w: principle %d needs an id and text", ErrInvalidConstitution, i+1)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate principle %q", ErrInvalidConstitution, p.ID)
		}
		seen[p.ID] = true
		p.Keywords = lower(p.Keywords)
		p.Forbidden = lower(p.Forbidden)
	}
	if c.Name == "" {
		c.Name = "constitution"
	}
	return &c, nil
}

// Applicable returns the principles relevant to input, in document order.
func (c *Constitution) Applicable(input string) []Principle {
	text := strings.ToLower(input)
	out := make([]Principle, 0, len(c.Principles))
	for _, p := range c.Principles {
		if len(p.Keywords) == 0 || containsAny(text, p.Keywords) != "" {
			out = append(out, p)
		}
	}
	return out
}

// Verify reports forbidden terms of the applicable principles found in
// content.
func (r Report) Verify(content string) []Discrepancy {
	text := strings.ToLower(content)
	var out []Discrepancy
	for _, p := range r.Principles {
		for _, term := range p.Forbidden {
			if strings.Contains(text, term) {
				out = append(out, Discrepancy{PrincipleID: p.ID, Term: term})
			}
		}
	}
	return out
}

func containsAny(text string, terms []string) string {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return t
		}
	}
	return ""
}

func lower(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
