package tier

import (
	"context"
	"fmt"
	"strings"
)

// System labels reported in responses.
const (
	SystemCortex   = "cortex"
	SystemDeepMind = "deep_mind"
)

// Status is the explicit outcome of a tier execution.
type Status int

const (
	StatusSucceeded Status = iota
	StatusDegraded         // produced content through an internal fallback
	StatusFailed           // produced no usable content; Err is set
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Request is what the dispatcher hands to an executor.
type Request struct {
	Input        string
	Intent       string
	SystemPrompt string
}

// Stage is one step of the deep tier pipeline.
type Stage struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// Trace is an ordered list of stages.
type Trace []Stage

// String renders the trace as a numbered list, one stage per line.
func (t Trace) String() string {
	var b strings.Builder
	for i, s := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, s.Detail)
	}
	return b.String()
}

// Names returns the stage names in order.
func (t Trace) Names() []string {
	names := make([]string, len(t))
	for i, s := range t {
		names[i] = s.Name
	}
	return names
}

// Result is what an executor returns. Content is always set unless Status
// is StatusFailed.
type Result struct {
	System  string
	Content string
	Trace   Trace
	Status  Status
	Err     error
}

// Executor runs a directive on one tier.
type Executor interface {
	Name() string
	Execute(ctx context.Context, req Request) Result
}
