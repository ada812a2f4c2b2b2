package grounding

import (
	"context"
	"fmt"
	"os"
)

// FileGrounder grounds against a YAML constitution on disk, or the built-in
// one when no path is set. The file is re-read on each call.
type FileGrounder struct {
	path     string
	fallback *Constitution
}

var _ Grounder = (*FileGrounder)(nil)

// New creates a grounder for the constitution at path. An empty path uses
// Default.
func New(path string) *FileGrounder {
	g := &FileGrounder{path: path}
	if path == "" {
		g.fallback = Default()
	}
	return g
}

// Ground loads the constitution and selects the principles that apply to
// input. A missing or malformed file is ErrUnavailable.
func (g *FileGrounder) Ground(ctx context.Context, input string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	c, err := g.constitution()
	if err != nil {
		return Report{}, err
	}
	return Report{
		Constitution: c.Name,
		Principles:   c.Applicable(input),
	}, nil
}

func (g *FileGrounder) constitution() (*Constitution, error) {
	if g.fallback != nil {
		return g.fallback, nil
	}

	data, err := os.ReadFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, g.path, err)
	}
	return c, nil
}
