package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/nba-query-engine/internal/common/config"
	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
	"github.com/ghadfield32/nba-query-engine/internal/resolve"
	"github.com/ghadfield32/nba-query-engine/pkg/registry"
)

// fixtureProvider serves canned payloads per operation and can be told
// to fail specific operations.
type fixtureProvider struct {
	fail map[string]models.FailureKind
}

func (f *fixtureProvider) Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
	if kind, ok := f.fail[operation]; ok {
		return nil, models.NewFailure(kind, "%s unavailable", operation)
	}

	switch operation {
	case provider.OpLeagueLeaders:
		metric, _ := params["metric"].(string)
		season, _ := params["season"].(string)
		return models.Payload{
			"metric": metric,
			"season": season,
			"leaders": []map[string]interface{}{
				{"rank": 1, "name": "Trae Young", "team": "ATL", "value": 11.2},
				{"rank": 2, "name": "Nikola Jokic", "team": "DEN", "value": 10.4},
			},
		}, nil
	case provider.OpPlayerStats:
		id, _ := params["player_id"].(string)
		name := "LeBron James"
		pts := 25.1
		if id == "201142" {
			name = "Kevin Durant"
			pts = 27.3
		}
		return models.Payload{
			"name": name, "season": "2025-26", "games_played": 70,
			"PTS": pts, "REB": 7.0, "AST": 6.1, "FG_PCT": 0.52, "TOV": 3.1,
		}, nil
	case provider.OpTeamStats, provider.OpTeamAdvancedStats:
		id, _ := params["team_id"].(string)
		name := "Los Angeles Lakers"
		if id == "1610612738" {
			name = "Boston Celtics"
		}
		return models.Payload{
			"name": name, "season": "2025-26",
			"W": 50, "L": 20, "PTS": 117.2, "REB": 44.1, "AST": 27.3,
			"FG_PCT": 0.49, "PLUS_MINUS": 5.5,
		}, nil
	case provider.OpStandings:
		return models.Payload{
			"season": "2025-26",
			"standings": []map[string]interface{}{
				{"rank": 1, "name": "Boston Celtics", "conference": "East", "W": 58, "L": 18, "W_PCT": 0.763, "streak": "W4"},
			},
		}, nil
	case provider.OpHeadToHead:
		return models.Payload{"season": "2025-26", "wins_a": 2, "wins_b": 1, "games_met": 3, "avg_total": 224.0}, nil
	case provider.OpRecentGames:
		return models.Payload{"games": []map[string]interface{}{
			{"date": "2026-03-10", "opponent": "X", "result": "W", "points_for": 112, "points_against": 104},
		}}, nil
	case provider.OpPlayerCareerStats:
		return models.Payload{"seasons": []map[string]interface{}{
			{"season": "2017-18", "PTS": 13.9, "REB": 5.0, "AST": 1.6},
			{"season": "2025-26", "PTS": 28.4, "REB": 8.6, "AST": 4.8},
		}}, nil
	}
	return nil, models.NewFailure(models.FailureInvalidParameter, "unsupported operation %s", operation)
}

func newTestPipeline(t *testing.T, fail map[string]models.FailureKind) *Pipeline {
	t.Helper()
	reg, err := registry.Builtin()
	require.NoError(t, err)
	cfg := config.PipelineConfig{
		CallTimeout:       2000,
		WeakRuleWeight:    0.6,
		DefaultSeason:     "2025-26",
		DefaultLeaderRows: 10,
	}
	return New(reg, resolve.NewLexiconResolver(), &fixtureProvider{fail: fail}, cfg, logger.NewTestLogger(t))
}

func TestAnswerLeaders(t *testing.T) {
	p := newTestPipeline(t, nil)

	answer := p.Answer(context.Background(), "Who leads the league in assists?")

	assert.Contains(t, answer.Text, "AST")
	assert.Contains(t, answer.Text, "Trae Young")
	assert.False(t, answer.Partial)
	assert.Greater(t, answer.Confidence, 0.7)
}

func TestAnswerPlayerComparison(t *testing.T) {
	p := newTestPipeline(t, nil)

	answer := p.Answer(context.Background(), "Compare LeBron James and Kevin Durant")

	assert.Contains(t, answer.Text, "Advantage")
	assert.Contains(t, answer.Text, "LeBron James")
	assert.Contains(t, answer.Text, "Kevin Durant")
	assert.False(t, answer.Partial)
}

func TestAnswerPartialFailure(t *testing.T) {
	p := newTestPipeline(t, map[string]models.FailureKind{
		provider.OpStandings: models.FailureUpstreamUnavailable,
	})

	answer := p.Answer(context.Background(), "How are the Boston Celtics doing this season?")

	assert.True(t, answer.Partial)
	assert.Contains(t, answer.Text, "Boston Celtics")
	assert.Contains(t, answer.Text, "incomplete")
	assert.Contains(t, answer.Text, provider.OpStandings)
	assert.Less(t, answer.Confidence, 1.0)
}

func TestAnswerUnsupportedQuestion(t *testing.T) {
	p := newTestPipeline(t, nil)

	answer := p.Answer(context.Background(), "What is the meaning of life?")

	assert.Contains(t, answer.Text, "can't answer")
	assert.LessOrEqual(t, answer.Confidence, 0.3)
	assert.False(t, answer.Partial)
}

func TestAnswerMatchupContext(t *testing.T) {
	p := newTestPipeline(t, nil)

	answer := p.Answer(context.Background(), "Preview the matchup between the Lakers and the Celtics")

	assert.Contains(t, answer.Text, "Matchup preview")
	assert.Contains(t, answer.Text, "Season series 2-1")
	assert.False(t, answer.Partial)
}

func TestAnswerTotalFailureLowConfidence(t *testing.T) {
	p := newTestPipeline(t, map[string]models.FailureKind{
		provider.OpLeagueLeaders: models.FailureUpstreamUnavailable,
	})

	answer := p.Answer(context.Background(), "Who leads the league in points?")

	assert.Contains(t, answer.Text, "couldn't fetch")
	assert.LessOrEqual(t, answer.Confidence, 0.2)
}

func TestAnswerConfidenceDropsWithFailures(t *testing.T) {
	clean := newTestPipeline(t, nil)
	degraded := newTestPipeline(t, map[string]models.FailureKind{
		provider.OpHeadToHead: models.FailureRateLimited,
	})

	question := "Preview the matchup between the Lakers and the Celtics"
	full := clean.Answer(context.Background(), question)
	partial := degraded.Answer(context.Background(), question)

	assert.True(t, partial.Partial)
	assert.Less(t, partial.Confidence, full.Confidence)
}
