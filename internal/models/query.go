package models

// EntityKind distinguishes players from teams.
type EntityKind string

const (
	EntityPlayer EntityKind = "player"
	EntityTeam   EntityKind = "team"
)

// EntityReference is a resolved real-world subject. Immutable once
// created; owned by the ParsedQuery that embeds it.
type EntityReference struct {
	Kind       EntityKind `json:"kind"`
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Confidence float64    `json:"confidence"`
	Aliases    []string   `json:"aliases,omitempty"`
}

// TimeRangeKind tags the populated variant of a TimeRange.
type TimeRangeKind string

const (
	TimeRangeSeason   TimeRangeKind = "season"
	TimeRangeDateSpan TimeRangeKind = "date_span"
	TimeRangeRelative TimeRangeKind = "relative"
)

// TimeRange is a sum type: exactly one variant is populated, selected
// by Kind.
type TimeRange struct {
	Kind TimeRangeKind `json:"kind"`

	Season string `json:"season,omitempty"` // e.g. "2025-26"

	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`

	Relative   string `json:"relative,omitempty"` // "current" or "last_n"
	LastNGames int    `json:"last_n_games,omitempty"`
}

// SeasonRange builds the season variant.
func SeasonRange(season string) *TimeRange {
	return &TimeRange{Kind: TimeRangeSeason, Season: season}
}

// DateSpanRange builds the explicit start/end variant.
func DateSpanRange(start, end string) *TimeRange {
	return &TimeRange{Kind: TimeRangeDateSpan, StartDate: start, EndDate: end}
}

// CurrentRange builds the "current period" relative variant.
func CurrentRange() *TimeRange {
	return &TimeRange{Kind: TimeRangeRelative, Relative: "current"}
}

// LastNRange builds the "most recent n games" relative variant.
func LastNRange(n int) *TimeRange {
	return &TimeRange{Kind: TimeRangeRelative, Relative: "last_n", LastNGames: n}
}

// Modifier keys recognized in ParsedQuery.Modifiers.
const (
	ModifierTopN            = "top_n"
	ModifierPerMode         = "per_mode"
	ModifierConference      = "conference"
	ModifierSurplusEntities = "surplus_entities"
)

// ParsedQuery is the parser's output: one per request, immutable,
// consumed by the planner and re-read by the synthesizer.
type ParsedQuery struct {
	Raw        string                 `json:"raw"`
	Intent     Intent                 `json:"intent"`
	Entities   []EntityReference      `json:"entities"`
	Metrics    []string               `json:"metrics"`
	TimeRange  *TimeRange             `json:"time_range,omitempty"`
	Modifiers  map[string]interface{} `json:"modifiers,omitempty"`
	Confidence float64                `json:"confidence"`
}

// Modifier returns a modifier value and whether it was set.
func (q *ParsedQuery) Modifier(key string) (interface{}, bool) {
	if q.Modifiers == nil {
		return nil, false
	}
	v, ok := q.Modifiers[key]
	return v, ok
}

// IntModifier returns an integer modifier or the fallback.
func (q *ParsedQuery) IntModifier(key string, fallback int) int {
	if v, ok := q.Modifier(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return fallback
}
