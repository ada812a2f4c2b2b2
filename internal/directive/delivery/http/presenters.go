package http

import (
	"aegnt-unltd/internal/brain"
	"aegnt-unltd/internal/router"
)

// --- Request DTOs ---

// Input is a pointer so that an empty directive is still accepted.
type processReq struct {
	Input *string `json:"input" binding:"required"`
}

func (r processReq) validate() error {
	if r.Input == nil {
		return errInputRequired
	}
	return nil
}

// --- Response DTOs ---

type processResp struct {
	Intent         router.Intent `json:"intent"`
	System         string        `json:"system"`
	Content        string        `json:"content"`
	ReasoningTrace *string       `json:"reasoning_trace"`
	LatencyMS      int64         `json:"latency_ms"`
	Degraded       bool          `json:"degraded,omitempty"`
}

func (h *handler) newProcessResp(out brain.Response) processResp {
	return processResp{
		Intent:         out.Intent,
		System:         out.System,
		Content:        out.Content,
		ReasoningTrace: out.ReasoningTrace(),
		LatencyMS:      out.LatencyMS,
		Degraded:       out.Degraded,
	}
}

type reloadResp struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}
