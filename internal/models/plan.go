package models

// ToolCall is a concrete, fully-bound data-fetch operation for one
// request. Owned by the ExecutionPlan.
type ToolCall struct {
	ID        string                 `json:"id"`
	Operation string                 `json:"operation"`
	Params    map[string]interface{} `json:"params"`
	Group     int                    `json:"group"`
}

// ExecutionPlan is an ordered sequence of tool calls in contiguous
// parallel groups starting at 0. Group ordering is the only dependency
// primitive: no call ever consumes another call's output.
type ExecutionPlan struct {
	TemplateID string     `json:"template_id"`
	Calls      []ToolCall `json:"calls"`
	MultiGroup bool       `json:"multi_group"`
}

// GroupCount returns the number of parallel groups in the plan.
func (p *ExecutionPlan) GroupCount() int {
	max := -1
	for _, c := range p.Calls {
		if c.Group > max {
			max = c.Group
		}
	}
	return max + 1
}

// CallsInGroup returns the calls with the given group index, in plan order.
func (p *ExecutionPlan) CallsInGroup(group int) []ToolCall {
	var out []ToolCall
	for _, c := range p.Calls {
		if c.Group == group {
			out = append(out, c)
		}
	}
	return out
}
