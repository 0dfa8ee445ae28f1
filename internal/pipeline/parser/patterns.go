package parser

import (
	"regexp"
	"strings"

	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// intentRule is one priority-ordered classification rule. Rules are
// evaluated top to bottom; the first hit wins. Weak rules scale the
// query confidence down.
type intentRule struct {
	intent  models.Intent
	markers []string
	strong  bool
}

// intentRules is the fixed rule table. Order is part of the contract:
// reordering changes classification for ambiguous questions.
var intentRules = []intentRule{
	{models.IntentTimeSeriesComparison, []string{
		"career", "over time", "trajectory", "by season", "season by season",
		"year by year", "progression",
	}, true},
	{models.IntentContext, []string{
		"matchup", "match up", "head to head", "head-to-head", "preview",
		"play against", "face off", "storylines",
	}, true},
	{models.IntentComparison, []string{
		"compare", "compared", " vs ", " vs. ", "versus", "better than",
		"or worse",
	}, true},
	{models.IntentLeaders, []string{
		"who leads", "leader", "leaders", "top ", "most ", "best in",
		"highest", "who has the most",
	}, true},
	{models.IntentStandings, []string{
		"standings", "seed", "seeding", "conference race", "division",
		"record in the",
	}, true},
}

var (
	seasonPattern   = regexp.MustCompile(`\b((?:19|20)\d{2})\s*[-–/]\s*(\d{2})\b`)
	dateSpanPattern = regexp.MustCompile(`\bfrom\s+(\d{4}-\d{2}-\d{2})\s+(?:to|until)\s+(\d{4}-\d{2}-\d{2})\b`)
	lastNPattern    = regexp.MustCompile(`\blast\s+(\d{1,2})\s+games?\b`)
	topNPattern     = regexp.MustCompile(`\btop\s+(\d{1,3})\b`)
	capRunPattern   = regexp.MustCompile(`[A-Z][A-Za-z'’.\-]*(?:\s+[A-Z][A-Za-z'’.\-]*)*`)
)

// classifyIntent returns the first matching rule's intent and whether
// the match was strong. No marker hit returns IntentUnknown.
func classifyIntent(lower string) (models.Intent, bool) {
	for _, rule := range intentRules {
		for _, marker := range rule.markers {
			if strings.Contains(lower, marker) {
				return rule.intent, rule.strong
			}
		}
	}
	return models.IntentUnknown, false
}

// extractTimeRange finds an explicit time scope. Returns nil when the
// question doesn't state one.
func extractTimeRange(lower string) *models.TimeRange {
	if m := dateSpanPattern.FindStringSubmatch(lower); m != nil {
		return models.DateSpanRange(m[1], m[2])
	}
	if m := seasonPattern.FindStringSubmatch(lower); m != nil {
		return models.SeasonRange(m[1] + "-" + m[2])
	}
	if m := lastNPattern.FindStringSubmatch(lower); m != nil {
		n := 0
		for _, c := range m[1] {
			n = n*10 + int(c-'0')
		}
		return models.LastNRange(n)
	}
	if strings.Contains(lower, "this season") || strings.Contains(lower, "currently") || strings.Contains(lower, "right now") {
		return models.CurrentRange()
	}
	return nil
}

// extractModifiers pulls targeted toggles out of the question text.
func extractModifiers(lower string) map[string]interface{} {
	mods := map[string]interface{}{}

	if m := topNPattern.FindStringSubmatch(lower); m != nil {
		n := 0
		for _, c := range m[1] {
			n = n*10 + int(c-'0')
		}
		if n > 0 {
			mods[models.ModifierTopN] = n
		}
	}

	switch {
	case strings.Contains(lower, "per possession"):
		mods[models.ModifierPerMode] = "per_possession"
	case strings.Contains(lower, "per 36"):
		mods[models.ModifierPerMode] = "per_36"
	case strings.Contains(lower, "per game"):
		mods[models.ModifierPerMode] = "per_game"
	}

	switch {
	case strings.Contains(lower, "eastern conference"), strings.Contains(lower, "the east"):
		mods[models.ModifierConference] = "East"
	case strings.Contains(lower, "western conference"), strings.Contains(lower, "the west"):
		mods[models.ModifierConference] = "West"
	}

	return mods
}

// extractMetrics matches the question against the closed metric
// vocabulary. Matched phrases are blanked so "three pointers" doesn't
// also count as "points".
func extractMetrics(lower string) []string {
	text := lower
	var out []string
	seen := map[string]bool{}
	for _, syn := range metricVocabulary {
		if strings.Contains(text, syn.phrase) {
			if !seen[syn.code] {
				seen[syn.code] = true
				out = append(out, syn.code)
			}
			text = strings.ReplaceAll(text, syn.phrase, " ")
		}
	}
	return out
}
