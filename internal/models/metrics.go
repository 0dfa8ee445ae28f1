package models

// Canonical metric codes. These match the column names served by the
// stats provider.
const (
	MetricPoints       = "PTS"
	MetricRebounds     = "REB"
	MetricAssists      = "AST"
	MetricSteals       = "STL"
	MetricBlocks       = "BLK"
	MetricTurnovers    = "TOV"
	MetricFieldGoalPct = "FG_PCT"
	MetricThreePct     = "FG3_PCT"
	MetricThreesMade   = "FG3M"
	MetricFreeThrowPct = "FT_PCT"
	MetricMinutes      = "MIN"
	MetricPlusMinus    = "PLUS_MINUS"
	MetricEfficiency   = "EFF"
	MetricWins         = "W"
	MetricLosses       = "L"
	MetricWinPct       = "W_PCT"
)

// metricDirection records whether a higher value is better for the
// metric. Static configuration, the comparison Advantage column reads
// it, never inferred.
var metricDirection = map[string]bool{
	MetricPoints:       true,
	MetricRebounds:     true,
	MetricAssists:      true,
	MetricSteals:       true,
	MetricBlocks:       true,
	MetricTurnovers:    false,
	MetricFieldGoalPct: true,
	MetricThreePct:     true,
	MetricThreesMade:   true,
	MetricFreeThrowPct: true,
	MetricMinutes:      true,
	MetricPlusMinus:    true,
	MetricEfficiency:   true,
	MetricWins:         true,
	MetricLosses:       false,
	MetricWinPct:       true,
}

// HigherIsBetter reports the preferred direction for a metric.
// Unrecognized metrics default to higher-is-better.
func HigherIsBetter(metric string) bool {
	if dir, ok := metricDirection[metric]; ok {
		return dir
	}
	return true
}

var metricLabels = map[string]string{
	MetricPoints:       "Points",
	MetricRebounds:     "Rebounds",
	MetricAssists:      "Assists",
	MetricSteals:       "Steals",
	MetricBlocks:       "Blocks",
	MetricTurnovers:    "Turnovers",
	MetricFieldGoalPct: "FG%",
	MetricThreePct:     "3P%",
	MetricThreesMade:   "3PM",
	MetricFreeThrowPct: "FT%",
	MetricMinutes:      "Minutes",
	MetricPlusMinus:    "Plus/Minus",
	MetricEfficiency:   "Efficiency",
	MetricWins:         "Wins",
	MetricLosses:       "Losses",
	MetricWinPct:       "Win%",
}

// MetricLabel returns the display label for a metric code, falling back
// to the code itself.
func MetricLabel(metric string) string {
	if label, ok := metricLabels[metric]; ok {
		return label
	}
	return metric
}
