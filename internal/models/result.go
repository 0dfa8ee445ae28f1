package models

import "time"

// Payload is the result body of a successful data-fetch operation.
type Payload map[string]interface{}

// ToolResult is the immutable outcome of one tool call.
type ToolResult struct {
	CallID    string        `json:"call_id"`
	Operation string        `json:"operation"`
	Success   bool          `json:"success"`
	Payload   Payload       `json:"payload,omitempty"`
	Failure   *Failure      `json:"failure,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// ExecutionResult aggregates every tool result of a plan run.
// AllSuccess and Partial are mutually exclusive; a zero-call plan has
// both false and is treated downstream as a resolution failure.
type ExecutionResult struct {
	Results    map[string]ToolResult `json:"results"`
	Order      []string              `json:"order"` // call ids in plan order
	Duration   time.Duration         `json:"duration"`
	AllSuccess bool                  `json:"all_success"`
	Partial    bool                  `json:"partial"`
}

// SuccessCount returns how many calls succeeded.
func (r *ExecutionResult) SuccessCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}

// SuccessFraction returns successful calls over total calls, 0 for an
// empty result.
func (r *ExecutionResult) SuccessFraction() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return float64(r.SuccessCount()) / float64(len(r.Results))
}

// InOrder returns the tool results in plan order.
func (r *ExecutionResult) InOrder() []ToolResult {
	out := make([]ToolResult, 0, len(r.Order))
	for _, id := range r.Order {
		if res, ok := r.Results[id]; ok {
			out = append(out, res)
		}
	}
	return out
}

// SynthesizedResponse is the formatted answer plus provenance.
type SynthesizedResponse struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	Missing    []string `json:"missing,omitempty"`
}

// Answer is the pipeline's external response shape.
type Answer struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	TookMs     int64   `json:"took_ms"`
	Partial    bool    `json:"partial"`
}
