package brain

import (
	"encoding/json"
	"time"

	"aegnt-unltd/internal/metrics"
	"aegnt-unltd/internal/router"
	"aegnt-unltd/internal/tier"
)

// Config is immutable after New.
type Config struct {
	FastModel     string
	SlowModel     string
	MemoryPath    string
	KnowledgePath string
	DeepTimeout   time.Duration
}

// Deps are the collaborators a Brain dispatches to. Fast and Deep are
// required.
type Deps struct {
	Classifier router.Classifier
	Fast       tier.Executor
	Deep       tier.Executor
	Policy     DegradePolicy
	Metrics    metrics.Recorder
}

// Response answers one directive.
type Response struct {
	Intent    router.Intent
	System    string
	Content   string
	Trace     tier.Trace
	LatencyMS int64
	Degraded  bool
	RequestID string
}

// ReasoningTrace renders the trace, or nil when the fast tier answered.
func (r Response) ReasoningTrace() *string {
	if len(r.Trace) == 0 {
		return nil
	}
	s := r.Trace.String()
	return &s
}

type responseJSON struct {
	Intent         router.Intent `json:"intent"`
	System         string        `json:"system"`
	Content        string        `json:"content"`
	ReasoningTrace *string       `json:"reasoning_trace"`
	LatencyMS      int64         `json:"latency_ms"`
	Degraded       bool          `json:"degraded,omitempty"`
	RequestID      string        `json:"request_id,omitempty"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(responseJSON{
		Intent:         r.Intent,
		System:         r.System,
		Content:        r.Content,
		ReasoningTrace: r.ReasoningTrace(),
		LatencyMS:      r.LatencyMS,
		Degraded:       r.Degraded,
		RequestID:      r.RequestID,
	})
}
