package parser

import "github.com/ghadfield32/nba-query-engine/internal/models"

// metricSynonym maps a lowercase phrase to a canonical metric code.
// The slice is scanned in order so multi-word phrases must precede
// their single-word substrings ("three point percentage" before
// "threes").
type metricSynonym struct {
	phrase string
	code   string
}

var metricVocabulary = []metricSynonym{
	{"three point percentage", models.MetricThreePct},
	{"three-point percentage", models.MetricThreePct},
	{"3 point percentage", models.MetricThreePct},
	{"3p%", models.MetricThreePct},
	{"field goal percentage", models.MetricFieldGoalPct},
	{"fg%", models.MetricFieldGoalPct},
	{"shooting percentage", models.MetricFieldGoalPct},
	{"free throw percentage", models.MetricFreeThrowPct},
	{"ft%", models.MetricFreeThrowPct},
	{"free throws", models.MetricFreeThrowPct},
	{"plus minus", models.MetricPlusMinus},
	{"plus/minus", models.MetricPlusMinus},
	{"win percentage", models.MetricWinPct},
	{"threes made", models.MetricThreesMade},
	{"three pointers", models.MetricThreesMade},
	{"3-pointers", models.MetricThreesMade},
	{"threes", models.MetricThreesMade},
	{"points", models.MetricPoints},
	{"scoring", models.MetricPoints},
	{"ppg", models.MetricPoints},
	{"rebounds", models.MetricRebounds},
	{"rebounding", models.MetricRebounds},
	{"boards", models.MetricRebounds},
	{"rpg", models.MetricRebounds},
	{"assists", models.MetricAssists},
	{"apg", models.MetricAssists},
	{"playmaking", models.MetricAssists},
	{"steals", models.MetricSteals},
	{"blocks", models.MetricBlocks},
	{"turnovers", models.MetricTurnovers},
	{"minutes", models.MetricMinutes},
	{"efficiency", models.MetricEfficiency},
	{"wins", models.MetricWins},
}

// stopwords are tokens that never start an entity span even when
// capitalized at the beginning of a sentence.
var stopwords = map[string]bool{
	"who": true, "what": true, "which": true, "whose": true, "how": true,
	"when": true, "where": true, "why": true, "is": true, "are": true,
	"was": true, "were": true, "does": true, "did": true, "do": true,
	"can": true, "could": true, "will": true, "would": true, "show": true,
	"tell": true, "give": true, "list": true, "rank": true, "compare": true,
	"the": true, "a": true, "an": true, "in": true, "on": true, "of": true,
	"for": true, "to": true, "and": true, "or": true, "vs": true,
	"versus": true, "against": true, "between": true, "with": true,
	"top": true, "best": true, "most": true, "leads": true, "leader": true,
	"leaders": true, "this": true, "last": true, "season": true,
	"career": true, "standings": true, "stats": true, "i": true, "me": true,
	"by": true, "over": true, "per": true,
}
