package synthesizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

func newSynth(t *testing.T) *Synthesizer {
	t.Helper()
	return New(logger.NewTestLogger(t))
}

func resultOf(results ...models.ToolResult) *models.ExecutionResult {
	r := &models.ExecutionResult{Results: map[string]models.ToolResult{}}
	succeeded := 0
	for _, res := range results {
		r.Results[res.CallID] = res
		r.Order = append(r.Order, res.CallID)
		if res.Success {
			succeeded++
		}
	}
	r.AllSuccess = len(results) > 0 && succeeded == len(results)
	r.Partial = succeeded > 0 && succeeded < len(results)
	return r
}

func ok(id, operation string, payload models.Payload) models.ToolResult {
	return models.ToolResult{CallID: id, Operation: operation, Success: true, Payload: payload}
}

func failed(id, operation string, kind models.FailureKind) models.ToolResult {
	return models.ToolResult{CallID: id, Operation: operation, Failure: models.NewFailure(kind, "backend error")}
}

func playerPayload(name string, pts, reb, ast, fgPct, tov float64) models.Payload {
	return models.Payload{
		"name":         name,
		"season":       "2025-26",
		"games_played": 70,
		"PTS":          pts,
		"REB":          reb,
		"AST":          ast,
		"FG_PCT":       fgPct,
		"TOV":          tov,
	}
}

func TestSynthesizeLeadersTable(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{
		Intent:     models.IntentLeaders,
		Metrics:    []string{models.MetricAssists},
		Confidence: 0.9,
	}
	result := resultOf(ok("c-00", provider.OpLeagueLeaders, models.Payload{
		"metric": models.MetricAssists,
		"season": "2025-26",
		"leaders": []map[string]interface{}{
			{"rank": 1, "name": "Trae Young", "team": "ATL", "value": 11.2},
			{"rank": 2, "name": "Nikola Jokic", "team": "DEN", "value": 10.4},
		},
	}))

	resp := s.Synthesize(query, result)

	assert.Contains(t, resp.Text, "AST")
	assert.Contains(t, resp.Text, "Trae Young")
	assert.Contains(t, resp.Text, "11.2")
	assert.Contains(t, resp.Text, "2025-26")
	assert.InDelta(t, 0.9, resp.Confidence, 0.001)
	assert.Empty(t, resp.Missing)
	assert.Equal(t, []string{provider.OpLeagueLeaders}, resp.Sources)
}

func TestSynthesizeComparisonAdvantage(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{
		Intent: models.IntentComparison,
		Entities: []models.EntityReference{
			{Kind: models.EntityPlayer, Name: "LeBron James"},
			{Kind: models.EntityPlayer, Name: "Kevin Durant"},
		},
		Confidence: 1.0,
	}
	result := resultOf(
		ok("c-00", provider.OpPlayerStats, playerPayload("LeBron James", 25.1, 7.5, 8.2, 0.523, 3.4)),
		ok("c-01", provider.OpPlayerStats, playerPayload("Kevin Durant", 27.3, 6.6, 5.0, 0.541, 2.9)),
	)

	resp := s.Synthesize(query, result)

	assert.Contains(t, resp.Text, "Advantage")
	assert.Contains(t, resp.Text, "LeBron James vs Kevin Durant")
	// Durant scores more, so the Points row credits him.
	assert.Contains(t, resp.Text, "Points")
	// Fewer turnovers is better, so the Turnovers row credits Durant too.
	assert.Contains(t, resp.Text, "Turnovers")
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestSynthesizeComparisonLowerIsBetter(t *testing.T) {
	assert.Equal(t, "B", advantage(models.MetricTurnovers, "A", 3.4, "B", 2.9))
	assert.Equal(t, "A", advantage(models.MetricPoints, "A", 3.4, "B", 2.9))
	assert.Equal(t, "Even", advantage(models.MetricPoints, "A", 3.0, "B", 3.0))
}

func TestSynthesizePartialNamesMissingData(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{
		Intent: models.IntentGroupStats,
		Entities: []models.EntityReference{
			{Kind: models.EntityTeam, Name: "Boston Celtics"},
		},
		Confidence: 0.95,
	}
	result := resultOf(
		ok("c-00", provider.OpTeamStats, models.Payload{
			"name": "Boston Celtics", "season": "2025-26",
			"W": 58, "L": 18, "PTS": 120.5, "PLUS_MINUS": 9.1,
		}),
		failed("c-01", provider.OpStandings, models.FailureUpstreamUnavailable),
	)

	resp := s.Synthesize(query, result)

	assert.Contains(t, resp.Text, "Boston Celtics")
	assert.Contains(t, resp.Text, "58-18")
	assert.Contains(t, resp.Text, "incomplete")
	assert.Contains(t, resp.Text, provider.OpStandings)
	assert.Equal(t, []string{provider.OpStandings}, resp.Missing)
	assert.InDelta(t, 0.5, resp.Confidence, 0.001)
}

func TestSynthesizeConfidenceNeverExceedsParse(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{
		Intent:     models.IntentLeaders,
		Confidence: 0.54,
	}
	result := resultOf(ok("c-00", provider.OpLeagueLeaders, models.Payload{
		"metric": "PTS", "season": "2025-26",
		"leaders": []map[string]interface{}{{"rank": 1, "name": "X", "team": "Y", "value": 30.0}},
	}))

	resp := s.Synthesize(query, result)
	assert.InDelta(t, 0.54, resp.Confidence, 0.001)
}

func TestSynthesizeTotalFailure(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{Intent: models.IntentEntityStats, Confidence: 0.9}
	result := resultOf(failed("c-00", provider.OpPlayerStats, models.FailureUpstreamUnavailable))

	resp := s.Synthesize(query, result)

	assert.Contains(t, resp.Text, "couldn't fetch")
	assert.Contains(t, resp.Text, provider.OpPlayerStats)
	assert.LessOrEqual(t, resp.Confidence, 0.2)
}

func TestSynthesizeUnsupported(t *testing.T) {
	s := newSynth(t)
	resp := s.Unsupported(&models.ParsedQuery{Intent: models.IntentUnknown, Confidence: 0.2})

	assert.Contains(t, resp.Text, "can't answer")
	assert.LessOrEqual(t, resp.Confidence, 0.2)
}

func TestSynthesizeStandings(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{
		Intent:     models.IntentStandings,
		Modifiers:  map[string]interface{}{models.ModifierConference: "East"},
		Confidence: 1.0,
	}
	result := resultOf(ok("c-00", provider.OpStandings, models.Payload{
		"season": "2025-26",
		"standings": []map[string]interface{}{
			{"rank": 1, "name": "Boston Celtics", "conference": "East", "W": 58, "L": 18, "W_PCT": 0.763, "streak": "W4"},
			{"rank": 2, "name": "Milwaukee Bucks", "conference": "East", "W": 52, "L": 24, "W_PCT": 0.684, "streak": "L1"},
		},
	}))

	resp := s.Synthesize(query, result)

	assert.Contains(t, resp.Text, "East conference standings")
	assert.Contains(t, resp.Text, "Boston Celtics")
	assert.Contains(t, resp.Text, "76.3%")
	assert.Contains(t, resp.Text, "W4")
}

func TestSynthesizeMatchupContextStreakStoryline(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{
		Intent: models.IntentContext,
		Entities: []models.EntityReference{
			{Kind: models.EntityTeam, Name: "Los Angeles Lakers"},
			{Kind: models.EntityTeam, Name: "Boston Celtics"},
		},
		Confidence: 1.0,
	}

	win := func(date string) map[string]interface{} {
		return map[string]interface{}{"date": date, "opponent": "X", "result": "W", "points_for": 110, "points_against": 100}
	}
	result := resultOf(
		ok("c-00", provider.OpTeamAdvancedStats, models.Payload{"name": "Los Angeles Lakers", "season": "2025-26", "W": 40, "L": 20, "PLUS_MINUS": 3.2}),
		ok("c-01", provider.OpTeamAdvancedStats, models.Payload{"name": "Boston Celtics", "season": "2025-26", "W": 45, "L": 15, "PLUS_MINUS": 7.8}),
		ok("c-02", provider.OpStandings, models.Payload{"season": "2025-26", "standings": []map[string]interface{}{}}),
		ok("c-03", provider.OpHeadToHead, models.Payload{"season": "2025-26", "wins_a": 2, "wins_b": 1, "games_met": 3, "avg_total": 221.7}),
		ok("c-04", provider.OpRecentGames, models.Payload{"games": []map[string]interface{}{
			win("2026-03-10"), win("2026-03-08"), win("2026-03-06"), win("2026-03-04"), win("2026-03-02"),
		}}),
		ok("c-05", provider.OpRecentGames, models.Payload{"games": []map[string]interface{}{
			{"date": "2026-03-09", "opponent": "X", "result": "L", "points_for": 98, "points_against": 104},
			win("2026-03-07"),
		}}),
	)

	resp := s.Synthesize(query, result)

	assert.Contains(t, resp.Text, "Matchup preview")
	assert.Contains(t, resp.Text, "Season series 2-1")
	assert.Contains(t, resp.Text, "won 5 straight")
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestSynthesizeCareerTrajectory(t *testing.T) {
	s := newSynth(t)
	query := &models.ParsedQuery{
		Intent: models.IntentTimeSeriesComparison,
		Entities: []models.EntityReference{
			{Kind: models.EntityPlayer, Name: "Jayson Tatum"},
		},
		Confidence: 0.85,
	}
	result := resultOf(ok("c-00", provider.OpPlayerCareerStats, models.Payload{
		"seasons": []map[string]interface{}{
			{"season": "2017-18", "PTS": 13.9, "REB": 5.0, "AST": 1.6},
			{"season": "2025-26", "PTS": 28.4, "REB": 8.6, "AST": 4.8},
		},
	}))

	resp := s.Synthesize(query, result)

	assert.Contains(t, resp.Text, "Jayson Tatum")
	assert.Contains(t, resp.Text, "trended upward")
	assert.Contains(t, resp.Text, "2017-18")
}

func TestSynthesizeJSONDecodedSlices(t *testing.T) {
	// Payloads from the HTTP provider arrive as []interface{} after
	// JSON decoding; list handling must accept both shapes.
	p := models.Payload{"leaders": []interface{}{
		map[string]interface{}{"rank": float64(1), "name": "X", "team": "Y", "value": 30.2},
	}}
	rows := getSlice(p, "leaders")
	require.Len(t, rows, 1)
	assert.Equal(t, "X", getString(rows[0], "name"))
}
