// Package postgres serves logical data-fetch operations from the
// locally warehoused stat tables.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

type Provider struct {
	db     *sql.DB
	logger logger.Logger
}

func NewProvider(db *sql.DB, log logger.Logger) *Provider {
	return &Provider{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "postgres-provider"}),
	}
}

func (p *Provider) Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
	var (
		payload models.Payload
		err     error
	)

	switch operation {
	case provider.OpLeagueLeaders:
		payload, err = p.leagueLeaders(ctx, params)
	case provider.OpPlayerStats:
		payload, err = p.playerStats(ctx, params)
	case provider.OpPlayerCareerStats:
		payload, err = p.playerCareerStats(ctx, params)
	case provider.OpTeamStats, provider.OpTeamAdvancedStats:
		payload, err = p.teamStats(ctx, params)
	case provider.OpStandings:
		payload, err = p.standings(ctx, params)
	case provider.OpRecentGames:
		payload, err = p.recentGames(ctx, params)
	case provider.OpHeadToHead:
		payload, err = p.headToHead(ctx, params)
	default:
		return nil, models.NewFailure(models.FailureInvalidParameter, "unsupported operation %s", operation)
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, models.NewFailure(models.FailureUpstreamUnavailable, "%s: query timeout", operation)
		}
		if err == sql.ErrNoRows {
			return nil, models.NewFailure(models.FailureEntityNotFound, "%s: no rows for given subject", operation)
		}
		p.logger.Error("query failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return nil, models.NewFailure(models.FailureUpstreamUnavailable, "%s: %v", operation, err)
	}

	return payload, nil
}

func stringParam(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing parameter %s", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %s must be a non-empty string", key)
	}
	return s, nil
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	switch n := params[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return fallback
}

func (p *Provider) leagueLeaders(ctx context.Context, params map[string]interface{}) (models.Payload, error) {
	metric, err := stringParam(params, "metric")
	if err != nil {
		return nil, err
	}
	season, err := stringParam(params, "season")
	if err != nil {
		return nil, err
	}
	if err := validMetricColumn(metric); err != nil {
		return nil, err
	}
	topN := intParam(params, "top_n", 10)

	query := fmt.Sprintf(`
		SELECT p.player_id, p.full_name, t.abbreviation, s.%s
		FROM player_season_stats s
		JOIN players p ON p.player_id = s.player_id
		JOIN teams t ON t.team_id = s.team_id
		WHERE s.season = $1
		ORDER BY s.%s DESC
		LIMIT $2`, columnFor(metric), columnFor(metric))

	rows, err := p.db.QueryContext(ctx, query, season, topN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaders := []map[string]interface{}{}
	rank := 1
	for rows.Next() {
		var playerID, name, team string
		var value float64
		if err := rows.Scan(&playerID, &name, &team, &value); err != nil {
			return nil, err
		}
		leaders = append(leaders, map[string]interface{}{
			"rank":      rank,
			"player_id": playerID,
			"name":      name,
			"team":      team,
			"value":     value,
		})
		rank++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.Payload{
		"metric":  metric,
		"season":  season,
		"leaders": leaders,
	}, nil
}

func (p *Provider) playerStats(ctx context.Context, params map[string]interface{}) (models.Payload, error) {
	playerID, err := stringParam(params, "player_id")
	if err != nil {
		return nil, err
	}
	season, err := stringParam(params, "season")
	if err != nil {
		return nil, err
	}

	row := p.db.QueryRowContext(ctx, `
		SELECT p.full_name, s.games_played, s.pts, s.reb, s.ast, s.stl, s.blk,
		       s.tov, s.fg_pct, s.fg3_pct, s.ft_pct, s.min, s.plus_minus
		FROM player_season_stats s
		JOIN players p ON p.player_id = s.player_id
		WHERE s.player_id = $1 AND s.season = $2`, playerID, season)

	var name string
	var gp int
	var pts, reb, ast, stl, blk, tov, fgPct, fg3Pct, ftPct, min, plusMinus float64
	if err := row.Scan(&name, &gp, &pts, &reb, &ast, &stl, &blk, &tov, &fgPct, &fg3Pct, &ftPct, &min, &plusMinus); err != nil {
		return nil, err
	}

	return models.Payload{
		"player_id":    playerID,
		"name":         name,
		"season":       season,
		"games_played": gp,
		"PTS":          pts,
		"REB":          reb,
		"AST":          ast,
		"STL":          stl,
		"BLK":          blk,
		"TOV":          tov,
		"FG_PCT":       fgPct,
		"FG3_PCT":      fg3Pct,
		"FT_PCT":       ftPct,
		"MIN":          min,
		"PLUS_MINUS":   plusMinus,
	}, nil
}

func (p *Provider) playerCareerStats(ctx context.Context, params map[string]interface{}) (models.Payload, error) {
	playerID, err := stringParam(params, "player_id")
	if err != nil {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT season, pts, reb, ast
		FROM player_season_stats
		WHERE player_id = $1
		ORDER BY season ASC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := []map[string]interface{}{}
	for rows.Next() {
		var season string
		var pts, reb, ast float64
		if err := rows.Scan(&season, &pts, &reb, &ast); err != nil {
			return nil, err
		}
		seasons = append(seasons, map[string]interface{}{
			"season": season,
			"PTS":    pts,
			"REB":    reb,
			"AST":    ast,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(seasons) == 0 {
		return nil, sql.ErrNoRows
	}

	return models.Payload{
		"player_id": playerID,
		"seasons":   seasons,
	}, nil
}

func (p *Provider) teamStats(ctx context.Context, params map[string]interface{}) (models.Payload, error) {
	teamID, err := stringParam(params, "team_id")
	if err != nil {
		return nil, err
	}
	season, err := stringParam(params, "season")
	if err != nil {
		return nil, err
	}

	row := p.db.QueryRowContext(ctx, `
		SELECT t.full_name, s.wins, s.losses, s.pts, s.reb, s.ast, s.fg_pct, s.plus_minus
		FROM team_season_stats s
		JOIN teams t ON t.team_id = s.team_id
		WHERE s.team_id = $1 AND s.season = $2`, teamID, season)

	var name string
	var wins, losses int
	var pts, reb, ast, fgPct, plusMinus float64
	if err := row.Scan(&name, &wins, &losses, &pts, &reb, &ast, &fgPct, &plusMinus); err != nil {
		return nil, err
	}

	return models.Payload{
		"team_id":    teamID,
		"name":       name,
		"season":     season,
		"W":          wins,
		"L":          losses,
		"PTS":        pts,
		"REB":        reb,
		"AST":        ast,
		"FG_PCT":     fgPct,
		"PLUS_MINUS": plusMinus,
	}, nil
}

func (p *Provider) standings(ctx context.Context, params map[string]interface{}) (models.Payload, error) {
	season, err := stringParam(params, "season")
	if err != nil {
		return nil, err
	}

	query := `
		SELECT t.team_id, t.full_name, s.conference, s.wins, s.losses, s.win_pct, s.streak
		FROM standings s
		JOIN teams t ON t.team_id = s.team_id
		WHERE s.season = $1`
	args := []interface{}{season}

	if conf, ok := params["conference"].(string); ok && conf != "" {
		query += ` AND s.conference = $2`
		args = append(args, conf)
	}
	query += ` ORDER BY s.win_pct DESC`

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := []map[string]interface{}{}
	rank := 1
	for rows.Next() {
		var teamID, name, conference, streak string
		var wins, losses int
		var winPct float64
		if err := rows.Scan(&teamID, &name, &conference, &wins, &losses, &winPct, &streak); err != nil {
			return nil, err
		}
		standings = append(standings, map[string]interface{}{
			"rank":       rank,
			"team_id":    teamID,
			"name":       name,
			"conference": conference,
			"W":          wins,
			"L":          losses,
			"W_PCT":      winPct,
			"streak":     streak,
		})
		rank++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.Payload{
		"season":    season,
		"standings": standings,
	}, nil
}

func (p *Provider) recentGames(ctx context.Context, params map[string]interface{}) (models.Payload, error) {
	entityID, err := stringParam(params, "entity_id")
	if err != nil {
		return nil, err
	}
	lastN := intParam(params, "last_n", 5)

	rows, err := p.db.QueryContext(ctx, `
		SELECT game_date, opponent, result, points_for, points_against
		FROM games
		WHERE team_id = $1
		ORDER BY game_date DESC
		LIMIT $2`, entityID, lastN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []map[string]interface{}{}
	for rows.Next() {
		var date, opponent, result string
		var pf, pa int
		if err := rows.Scan(&date, &opponent, &result, &pf, &pa); err != nil {
			return nil, err
		}
		games = append(games, map[string]interface{}{
			"date":           date,
			"opponent":       opponent,
			"result":         result,
			"points_for":     pf,
			"points_against": pa,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.Payload{
		"entity_id": entityID,
		"games":     games,
	}, nil
}

func (p *Provider) headToHead(ctx context.Context, params map[string]interface{}) (models.Payload, error) {
	teamA, err := stringParam(params, "team_a")
	if err != nil {
		return nil, err
	}
	teamB, err := stringParam(params, "team_b")
	if err != nil {
		return nil, err
	}
	season, err := stringParam(params, "season")
	if err != nil {
		return nil, err
	}

	row := p.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE winner_id = $1),
			COUNT(*) FILTER (WHERE winner_id = $2),
			COALESCE(AVG(total_points), 0)
		FROM matchups
		WHERE season = $3
		  AND ((home_id = $1 AND away_id = $2) OR (home_id = $2 AND away_id = $1))`,
		teamA, teamB, season)

	var winsA, winsB int
	var avgTotal float64
	if err := row.Scan(&winsA, &winsB, &avgTotal); err != nil {
		return nil, err
	}

	return models.Payload{
		"team_a":     teamA,
		"team_b":     teamB,
		"season":     season,
		"wins_a":     winsA,
		"wins_b":     winsB,
		"avg_total":  avgTotal,
		"games_met":  winsA + winsB,
	}, nil
}

// validMetricColumn guards against interpolating arbitrary strings into
// ORDER BY.
func validMetricColumn(metric string) error {
	if _, ok := metricColumns[metric]; !ok {
		return fmt.Errorf("unknown metric %s", metric)
	}
	return nil
}

var metricColumns = map[string]string{
	models.MetricPoints:       "pts",
	models.MetricRebounds:     "reb",
	models.MetricAssists:      "ast",
	models.MetricSteals:       "stl",
	models.MetricBlocks:       "blk",
	models.MetricTurnovers:    "tov",
	models.MetricFieldGoalPct: "fg_pct",
	models.MetricThreePct:     "fg3_pct",
	models.MetricThreesMade:   "fg3m",
	models.MetricFreeThrowPct: "ft_pct",
	models.MetricMinutes:      "min",
	models.MetricPlusMinus:    "plus_minus",
}

func columnFor(metric string) string {
	return metricColumns[metric]
}
