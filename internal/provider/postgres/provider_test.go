package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

func newMockProvider(t *testing.T) (*Provider, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProvider(db, logger.NewTestLogger(t)), mock
}

func TestLeagueLeaders(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectQuery("FROM player_season_stats").
		WithArgs("2025-26", 5).
		WillReturnRows(sqlmock.NewRows([]string{"player_id", "full_name", "abbreviation", "ast"}).
			AddRow("1628960", "Trae Young", "ATL", 11.2).
			AddRow("203999", "Nikola Jokic", "DEN", 10.4))

	payload, failure := p.Invoke(context.Background(), provider.OpLeagueLeaders, map[string]interface{}{
		"metric": models.MetricAssists,
		"season": "2025-26",
		"top_n":  5,
	})

	require.Nil(t, failure)
	assert.Equal(t, models.MetricAssists, payload["metric"])
	leaders := payload["leaders"].([]map[string]interface{})
	require.Len(t, leaders, 2)
	assert.Equal(t, "Trae Young", leaders[0]["name"])
	assert.Equal(t, 1, leaders[0]["rank"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeagueLeadersRejectsUnknownMetric(t *testing.T) {
	p, _ := newMockProvider(t)

	_, failure := p.Invoke(context.Background(), provider.OpLeagueLeaders, map[string]interface{}{
		"metric": "VIBES; DROP TABLE players",
		"season": "2025-26",
	})

	require.NotNil(t, failure)
	assert.Equal(t, models.FailureUpstreamUnavailable, failure.Kind)
}

func TestPlayerStats(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectQuery("FROM player_season_stats").
		WithArgs("2544", "2025-26").
		WillReturnRows(sqlmock.NewRows([]string{
			"full_name", "games_played", "pts", "reb", "ast", "stl", "blk",
			"tov", "fg_pct", "fg3_pct", "ft_pct", "min", "plus_minus",
		}).AddRow("LeBron James", 70, 25.1, 7.5, 8.2, 1.1, 0.6, 3.4, 0.523, 0.41, 0.756, 34.9, 4.3))

	payload, failure := p.Invoke(context.Background(), provider.OpPlayerStats, map[string]interface{}{
		"player_id": "2544",
		"season":    "2025-26",
	})

	require.Nil(t, failure)
	assert.Equal(t, "LeBron James", payload["name"])
	assert.Equal(t, 25.1, payload[models.MetricPoints])
	assert.Equal(t, 70, payload["games_played"])
}

func TestPlayerStatsNotFound(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectQuery("FROM player_season_stats").
		WithArgs("999", "2025-26").
		WillReturnRows(sqlmock.NewRows([]string{"full_name"}))

	_, failure := p.Invoke(context.Background(), provider.OpPlayerStats, map[string]interface{}{
		"player_id": "999",
		"season":    "2025-26",
	})

	require.NotNil(t, failure)
	assert.Equal(t, models.FailureEntityNotFound, failure.Kind)
	assert.False(t, failure.Retryable)
}

func TestPlayerStatsMissingParameter(t *testing.T) {
	p, _ := newMockProvider(t)

	_, failure := p.Invoke(context.Background(), provider.OpPlayerStats, map[string]interface{}{
		"season": "2025-26",
	})

	require.NotNil(t, failure)
}

func TestStandingsConferenceFilter(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectQuery("FROM standings").
		WithArgs("2025-26", "East").
		WillReturnRows(sqlmock.NewRows([]string{
			"team_id", "full_name", "conference", "wins", "losses", "win_pct", "streak",
		}).AddRow("1610612738", "Boston Celtics", "East", 58, 18, 0.763, "W4"))

	payload, failure := p.Invoke(context.Background(), provider.OpStandings, map[string]interface{}{
		"season":     "2025-26",
		"conference": "East",
	})

	require.Nil(t, failure)
	rows := payload["standings"].([]map[string]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Boston Celtics", rows[0]["name"])
	assert.Equal(t, 1, rows[0]["rank"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHeadToHead(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectQuery("FROM matchups").
		WithArgs("1610612747", "1610612738", "2025-26").
		WillReturnRows(sqlmock.NewRows([]string{"wins_a", "wins_b", "avg_total"}).
			AddRow(2, 1, 224.3))

	payload, failure := p.Invoke(context.Background(), provider.OpHeadToHead, map[string]interface{}{
		"team_a": "1610612747",
		"team_b": "1610612738",
		"season": "2025-26",
	})

	require.Nil(t, failure)
	assert.Equal(t, 2, payload["wins_a"])
	assert.Equal(t, 3, payload["games_met"])
}

func TestRecentGamesLimit(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectQuery("FROM games").
		WithArgs("1610612747", 5).
		WillReturnRows(sqlmock.NewRows([]string{"game_date", "opponent", "result", "points_for", "points_against"}).
			AddRow("2026-03-10", "BOS", "W", 112, 104))

	payload, failure := p.Invoke(context.Background(), provider.OpRecentGames, map[string]interface{}{
		"entity_id": "1610612747",
		"last_n":    5,
	})

	require.Nil(t, failure)
	games := payload["games"].([]map[string]interface{})
	require.Len(t, games, 1)
	assert.Equal(t, "W", games[0]["result"])
}

func TestUnsupportedOperation(t *testing.T) {
	p, _ := newMockProvider(t)

	_, failure := p.Invoke(context.Background(), "get_horoscope", nil)

	require.NotNil(t, failure)
	assert.Equal(t, models.FailureInvalidParameter, failure.Kind)
}
