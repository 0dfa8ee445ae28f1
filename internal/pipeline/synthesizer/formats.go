package synthesizer

import (
	"fmt"
	"strings"

	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

// payloadOf returns the nth successful payload for an operation, in
// plan order.
func payloadOf(results []models.ToolResult, operation string, nth int) (models.Payload, bool) {
	seen := 0
	for _, r := range results {
		if r.Operation != operation {
			continue
		}
		if seen == nth {
			if !r.Success {
				return nil, false
			}
			return r.Payload, true
		}
		seen++
	}
	return nil, false
}

func getString(p models.Payload, key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

func getFloat(p models.Payload, key string) (float64, bool) {
	switch n := p[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// getSlice normalizes list payload fields, which arrive as
// []map[string]interface{} from in-process providers and as
// []interface{} after JSON decoding.
func getSlice(p models.Payload, key string) []models.Payload {
	switch v := p[key].(type) {
	case []map[string]interface{}:
		out := make([]models.Payload, 0, len(v))
		for _, m := range v {
			out = append(out, models.Payload(m))
		}
		return out
	case []interface{}:
		out := make([]models.Payload, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, models.Payload(m))
			}
		}
		return out
	}
	return nil
}

// formatValue renders a metric value for display. Percentages are
// stored as fractions and shown as percentages.
func formatValue(metric string, v float64) string {
	switch metric {
	case models.MetricFieldGoalPct, models.MetricThreePct, models.MetricFreeThrowPct, models.MetricWinPct:
		return fmt.Sprintf("%.1f%%", v*100)
	case models.MetricPlusMinus:
		return fmt.Sprintf("%+.1f", v)
	case models.MetricWins, models.MetricLosses:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// displayMetrics returns the metrics an answer should cover: what the
// question asked for, or the intent's defaults.
func displayMetrics(query *models.ParsedQuery) []string {
	if len(query.Metrics) > 0 {
		return query.Metrics
	}
	return models.Profile(query.Intent).DefaultMetrics
}

func formatLeaders(query *models.ParsedQuery, results []models.ToolResult) string {
	p, ok := payloadOf(results, provider.OpLeagueLeaders, 0)
	if !ok {
		return "League leader data is unavailable."
	}

	metric := getString(p, "metric")
	season := getString(p, "season")
	leaders := getSlice(p, "leaders")
	if len(leaders) == 0 {
		return fmt.Sprintf("No leader data found for %s in %s.", models.MetricLabel(metric), season)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s leaders, %s season:\n\n", models.MetricLabel(metric), season)
	fmt.Fprintf(&b, "%4s  %-24s %-5s %s\n", "Rank", "Player", "Team", metric)
	for _, row := range leaders {
		value, _ := getFloat(row, "value")
		rank, _ := getFloat(row, "rank")
		fmt.Fprintf(&b, "%4.0f  %-24s %-5s %s\n",
			rank, getString(row, "name"), getString(row, "team"), formatValue(metric, value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatComparison(query *models.ParsedQuery, results []models.ToolResult) string {
	operation := provider.OpPlayerStats
	if len(query.Entities) > 0 && query.Entities[0].Kind == models.EntityTeam {
		operation = provider.OpTeamStats
	}

	left, leftOK := payloadOf(results, operation, 0)
	right, rightOK := payloadOf(results, operation, 1)

	// One side missing: show what we have as a plain stat block. The
	// partial notice names the gap.
	if leftOK != rightOK {
		p := left
		if rightOK {
			p = right
		}
		return statBlock(p)
	}
	if !leftOK && !rightOK {
		return "Comparison data is unavailable."
	}

	leftName := getString(left, "name")
	rightName := getString(right, "name")

	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s, %s season:\n\n", leftName, rightName, getString(left, "season"))
	width := maxLen(leftName, rightName)
	fmt.Fprintf(&b, "%-12s %-*s %-*s %s\n", "Metric", width, leftName, width, rightName, "Advantage")
	for _, metric := range displayMetrics(query) {
		lv, lok := getFloat(left, metric)
		rv, rok := getFloat(right, metric)
		if !lok || !rok {
			continue
		}
		fmt.Fprintf(&b, "%-12s %-*s %-*s %s\n",
			models.MetricLabel(metric),
			width, formatValue(metric, lv),
			width, formatValue(metric, rv),
			advantage(metric, leftName, lv, rightName, rv))
	}
	return strings.TrimRight(b.String(), "\n")
}

// advantage names the entity on the better side of the metric,
// honoring metrics where lower is better.
func advantage(metric, leftName string, lv float64, rightName string, rv float64) string {
	if lv == rv {
		return "Even"
	}
	leftWins := lv > rv
	if !models.HigherIsBetter(metric) {
		leftWins = !leftWins
	}
	if leftWins {
		return leftName
	}
	return rightName
}

func maxLen(a, b string) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n < 8 {
		n = 8
	}
	return n
}

// statBlock is the narrative season profile used for single-subject
// answers.
func statBlock(p models.Payload) string {
	name := getString(p, "name")
	season := getString(p, "season")

	var b strings.Builder
	if gp, ok := getFloat(p, "games_played"); ok {
		fmt.Fprintf(&b, "%s, %s season (%.0f games):\n", name, season, gp)
	} else {
		fmt.Fprintf(&b, "%s, %s season:\n", name, season)
	}

	if line := scoringLine(p); line != "" {
		b.WriteString(line + "\n")
	}
	if line := playmakingLine(p); line != "" {
		b.WriteString(line + "\n")
	}
	if line := defenseLine(p); line != "" {
		b.WriteString(line + "\n")
	}
	if line := impactLine(p); line != "" {
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func scoringLine(p models.Payload) string {
	pts, ok := getFloat(p, models.MetricPoints)
	if !ok {
		return ""
	}
	line := fmt.Sprintf("Scoring: %.1f points per game", pts)
	if fg, ok := getFloat(p, models.MetricFieldGoalPct); ok {
		line += fmt.Sprintf(" on %.1f%% shooting", fg*100)
	}
	if fg3, ok := getFloat(p, models.MetricThreePct); ok {
		line += fmt.Sprintf(" (%.1f%% from three)", fg3*100)
	}
	return line
}

func playmakingLine(p models.Payload) string {
	ast, ok := getFloat(p, models.MetricAssists)
	if !ok {
		return ""
	}
	line := fmt.Sprintf("Playmaking: %.1f assists", ast)
	if tov, ok := getFloat(p, models.MetricTurnovers); ok {
		line += fmt.Sprintf(", %.1f turnovers", tov)
	}
	return line
}

func defenseLine(p models.Payload) string {
	reb, haveReb := getFloat(p, models.MetricRebounds)
	stl, haveStl := getFloat(p, models.MetricSteals)
	blk, haveBlk := getFloat(p, models.MetricBlocks)
	if !haveReb && !haveStl && !haveBlk {
		return ""
	}
	parts := []string{}
	if haveReb {
		parts = append(parts, fmt.Sprintf("%.1f rebounds", reb))
	}
	if haveStl {
		parts = append(parts, fmt.Sprintf("%.1f steals", stl))
	}
	if haveBlk {
		parts = append(parts, fmt.Sprintf("%.1f blocks", blk))
	}
	return "Defense and boards: " + strings.Join(parts, ", ")
}

func impactLine(p models.Payload) string {
	pm, havePM := getFloat(p, models.MetricPlusMinus)
	min, haveMin := getFloat(p, models.MetricMinutes)
	if !havePM && !haveMin {
		return ""
	}
	switch {
	case havePM && haveMin:
		return fmt.Sprintf("Floor impact: %+.1f in %.1f minutes per game", pm, min)
	case havePM:
		return fmt.Sprintf("Floor impact: %+.1f per game", pm)
	default:
		return fmt.Sprintf("Minutes: %.1f per game", min)
	}
}

func formatEntityStats(query *models.ParsedQuery, results []models.ToolResult) string {
	p, ok := payloadOf(results, provider.OpPlayerStats, 0)
	if !ok {
		return "Player stats are unavailable."
	}
	return statBlock(p)
}

func formatGroupStats(query *models.ParsedQuery, results []models.ToolResult) string {
	team, ok := payloadOf(results, provider.OpTeamStats, 0)
	if !ok {
		return "Team stats are unavailable."
	}

	name := getString(team, "name")
	wins, _ := getFloat(team, models.MetricWins)
	losses, _ := getFloat(team, models.MetricLosses)
	pts, _ := getFloat(team, models.MetricPoints)

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s season: %.0f-%.0f", name, getString(team, "season"), wins, losses)
	if pm, ok := getFloat(team, models.MetricPlusMinus); ok {
		fmt.Fprintf(&b, ", scoring %.1f points per game at %+.1f net", pts, pm)
	} else {
		fmt.Fprintf(&b, ", scoring %.1f points per game", pts)
	}
	b.WriteString(".")

	if standings, ok := payloadOf(results, provider.OpStandings, 0); ok {
		for _, row := range getSlice(standings, "standings") {
			if getString(row, "name") != name {
				continue
			}
			rank, _ := getFloat(row, "rank")
			conf := getString(row, "conference")
			fmt.Fprintf(&b, " They sit %s in the %s.", ordinal(int(rank)), conf)
			break
		}
	}
	return b.String()
}

func formatStandings(query *models.ParsedQuery, results []models.ToolResult) string {
	p, ok := payloadOf(results, provider.OpStandings, 0)
	if !ok {
		return "Standings are unavailable."
	}

	rows := getSlice(p, "standings")
	if len(rows) == 0 {
		return fmt.Sprintf("No standings found for %s.", getString(p, "season"))
	}

	scope := "League"
	if conf, ok := query.Modifier(models.ModifierConference); ok {
		scope = fmt.Sprintf("%v conference", conf)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s standings, %s season:\n\n", scope, getString(p, "season"))
	fmt.Fprintf(&b, "%4s  %-24s %6s  %6s  %s\n", "Rank", "Team", "W-L", "Win%", "Streak")
	for _, row := range rows {
		rank, _ := getFloat(row, "rank")
		wins, _ := getFloat(row, "W")
		losses, _ := getFloat(row, "L")
		winPct, _ := getFloat(row, "W_PCT")
		fmt.Fprintf(&b, "%4.0f  %-24s %3.0f-%-3.0f %5.1f%%  %s\n",
			rank, getString(row, "name"), wins, losses, winPct*100, getString(row, "streak"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatMatchupContext(query *models.ParsedQuery, results []models.ToolResult) string {
	var b strings.Builder
	b.WriteString("Matchup preview")
	if len(query.Entities) == 2 {
		fmt.Fprintf(&b, ": %s vs %s", query.Entities[0].Name, query.Entities[1].Name)
	}
	b.WriteString("\n")

	teamA, okA := payloadOf(results, provider.OpTeamAdvancedStats, 0)
	teamB, okB := payloadOf(results, provider.OpTeamAdvancedStats, 1)
	if okA && okB {
		b.WriteString("\nSeason form:\n")
		b.WriteString(teamFormLine(teamA) + "\n")
		b.WriteString(teamFormLine(teamB) + "\n")
	}

	if h2h, ok := payloadOf(results, provider.OpHeadToHead, 0); ok {
		winsA, _ := getFloat(h2h, "wins_a")
		winsB, _ := getFloat(h2h, "wins_b")
		met, _ := getFloat(h2h, "games_met")
		b.WriteString("\nHead to head:\n")
		if met == 0 {
			fmt.Fprintf(&b, "These teams have not met yet in the %s season.\n", getString(h2h, "season"))
		} else {
			avg, _ := getFloat(h2h, "avg_total")
			fmt.Fprintf(&b, "Season series %.0f-%.0f across %.0f meetings, averaging %.1f total points.\n",
				winsA, winsB, met, avg)
		}
	}

	recentA, okRA := payloadOf(results, provider.OpRecentGames, 0)
	recentB, okRB := payloadOf(results, provider.OpRecentGames, 1)
	if okRA || okRB {
		b.WriteString("\nRecent form:\n")
		if okRA {
			b.WriteString(recentFormLine(nameOf(query, 0, teamA), recentA) + "\n")
		}
		if okRB {
			b.WriteString(recentFormLine(nameOf(query, 1, teamB), recentB) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func nameOf(query *models.ParsedQuery, idx int, p models.Payload) string {
	if p != nil {
		if name := getString(p, "name"); name != "" {
			return name
		}
	}
	if idx < len(query.Entities) {
		return query.Entities[idx].Name
	}
	return "Unknown"
}

func teamFormLine(p models.Payload) string {
	wins, _ := getFloat(p, models.MetricWins)
	losses, _ := getFloat(p, models.MetricLosses)
	line := fmt.Sprintf("%s: %.0f-%.0f", getString(p, "name"), wins, losses)
	if pm, ok := getFloat(p, models.MetricPlusMinus); ok {
		line += fmt.Sprintf(", %+.1f net rating", pm)
	}
	return line
}

// recentFormLine summarizes the last games and calls out a live streak
// of three or more.
func recentFormLine(name string, p models.Payload) string {
	games := getSlice(p, "games")
	if len(games) == 0 {
		return fmt.Sprintf("%s: no recent games on record", name)
	}

	wins := 0
	for _, g := range games {
		if getString(g, "result") == "W" {
			wins++
		}
	}
	line := fmt.Sprintf("%s: %d-%d over the last %d", name, wins, len(games)-wins, len(games))

	streakResult := getString(games[0], "result")
	streak := 0
	for _, g := range games {
		if getString(g, "result") != streakResult {
			break
		}
		streak++
	}
	if streak >= 3 {
		verb := "won"
		if streakResult == "L" {
			verb = "lost"
		}
		line += fmt.Sprintf(", and they have %s %d straight", verb, streak)
	}
	return line
}

func formatCareerTrajectory(query *models.ParsedQuery, results []models.ToolResult) string {
	var sections []string
	for i := range query.Entities {
		p, ok := payloadOf(results, provider.OpPlayerCareerStats, i)
		if !ok {
			continue
		}
		sections = append(sections, trajectoryLine(query.Entities[i].Name, p))
	}
	if len(sections) == 0 {
		return "Career data is unavailable."
	}
	return strings.Join(sections, "\n")
}

func trajectoryLine(name string, p models.Payload) string {
	seasons := getSlice(p, "seasons")
	if len(seasons) == 0 {
		return fmt.Sprintf("%s: no career data on record.", name)
	}

	first := seasons[0]
	last := seasons[len(seasons)-1]
	firstPts, _ := getFloat(first, models.MetricPoints)
	lastPts, _ := getFloat(last, models.MetricPoints)

	trend := "held steady"
	switch {
	case lastPts-firstPts >= 2.0:
		trend = "trended upward"
	case firstPts-lastPts >= 2.0:
		trend = "trended downward"
	}
	return fmt.Sprintf("%s: %d seasons on record, from %.1f points in %s to %.1f in %s; scoring has %s.",
		name, len(seasons), firstPts, getString(first, "season"), lastPts, getString(last, "season"), trend)
}

// formatGeneric is the fallback when an intent has no dedicated format.
func formatGeneric(results []models.ToolResult) string {
	var b strings.Builder
	for _, r := range results {
		if !r.Success {
			continue
		}
		fmt.Fprintf(&b, "%s: %d fields returned\n", r.Operation, len(r.Payload))
	}
	return strings.TrimRight(b.String(), "\n")
}
