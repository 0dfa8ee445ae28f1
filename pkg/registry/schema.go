package registry

// AnswerRegistry is the persisted registry document: an ordered
// collection of answer-pack templates. Order matters — template
// selection is first-match-wins.
type AnswerRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Templates   []Template `json:"templates"`
}

// Template maps an intent (and optionally an entity kind) to an
// ordered sequence of tool-call specs. Static, versioned configuration.
type Template struct {
	TemplateID          string   `json:"templateId"`
	Intent              string   `json:"intent"`
	EntityKind          string   `json:"entityKind,omitempty"`
	RequiredEntityArity int      `json:"requiredEntityArity"`
	DefaultMetrics      []string `json:"defaultMetrics,omitempty"`
	Steps               []Step   `json:"steps"`
}

// Step is one abstract tool-call spec: a logical operation name,
// parameter-binding expressions, and a parallel-group index. Binding
// expressions use {{path}} placeholders resolved against the parsed
// query; any other value passes through as a literal.
type Step struct {
	Operation string            `json:"operation"`
	Params    map[string]string `json:"params"`
	Group     int               `json:"group"`
}

// registrySchema validates registry documents before they are trusted.
const registrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "templates"],
  "properties": {
    "version": {"type": "string"},
    "lastUpdated": {"type": "string"},
    "templates": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["templateId", "intent", "requiredEntityArity", "steps"],
        "properties": {
          "templateId": {"type": "string", "minLength": 1},
          "intent": {
            "type": "string",
            "enum": ["leaders", "comparison", "entity_stats", "group_stats",
                     "standings", "context", "time_series_comparison"]
          },
          "entityKind": {"type": "string", "enum": ["player", "team"]},
          "requiredEntityArity": {"type": "integer", "minimum": 0},
          "defaultMetrics": {"type": "array", "items": {"type": "string"}},
          "steps": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["operation", "params", "group"],
              "properties": {
                "operation": {"type": "string", "minLength": 1},
                "params": {
                  "type": "object",
                  "additionalProperties": {"type": "string"}
                },
                "group": {"type": "integer", "minimum": 0}
              }
            }
          }
        }
      }
    }
  }
}`
