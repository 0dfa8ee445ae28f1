package models

// Intent is the closed-set classification of what kind of question was asked.
type Intent string

const (
	IntentLeaders              Intent = "leaders"
	IntentComparison           Intent = "comparison"
	IntentEntityStats          Intent = "entity_stats"
	IntentGroupStats           Intent = "group_stats"
	IntentStandings            Intent = "standings"
	IntentContext              Intent = "context"
	IntentTimeSeriesComparison Intent = "time_series_comparison"
	IntentUnknown              Intent = "unknown"
)

// IntentProfile describes the entity arity and defaults an intent expects.
// The parser uses it for confidence penalties and surplus-entity trimming,
// the planner for arity validation and metric defaulting.
type IntentProfile struct {
	MinEntities    int
	MaxEntities    int
	RequiresTime   bool
	DefaultMetrics []string
}

var intentProfiles = map[Intent]IntentProfile{
	IntentLeaders: {
		MinEntities:    0,
		MaxEntities:    0,
		DefaultMetrics: []string{MetricPoints},
	},
	IntentComparison: {
		MinEntities:    2,
		MaxEntities:    2,
		DefaultMetrics: []string{MetricPoints, MetricRebounds, MetricAssists, MetricFieldGoalPct, MetricTurnovers},
	},
	IntentEntityStats: {
		MinEntities:    1,
		MaxEntities:    1,
		RequiresTime:   true,
		DefaultMetrics: []string{MetricPoints, MetricRebounds, MetricAssists, MetricSteals, MetricBlocks, MetricFieldGoalPct},
	},
	IntentGroupStats: {
		MinEntities:    1,
		MaxEntities:    1,
		RequiresTime:   true,
		DefaultMetrics: []string{MetricPoints, MetricRebounds, MetricAssists, MetricFieldGoalPct, MetricPlusMinus},
	},
	IntentStandings: {
		MinEntities: 0,
		MaxEntities: 1,
	},
	IntentContext: {
		MinEntities:    2,
		MaxEntities:    2,
		DefaultMetrics: []string{MetricPoints, MetricFieldGoalPct, MetricPlusMinus},
	},
	IntentTimeSeriesComparison: {
		MinEntities:    1,
		MaxEntities:    2,
		RequiresTime:   true,
		DefaultMetrics: []string{MetricPoints, MetricRebounds, MetricAssists},
	},
	IntentUnknown: {},
}

// Profile returns the arity profile for an intent. Unknown intents get
// the zero profile.
func Profile(intent Intent) IntentProfile {
	return intentProfiles[intent]
}
