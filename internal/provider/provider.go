// Package provider defines the operation-invocation boundary between
// the pipeline and the statistical data backends.
package provider

import (
	"context"

	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// Logical operation names served by every Invoker implementation.
const (
	OpLeagueLeaders     = "get_league_leaders"
	OpPlayerStats       = "get_player_stats"
	OpPlayerCareerStats = "get_player_career_stats"
	OpTeamStats         = "get_team_stats"
	OpTeamAdvancedStats = "get_team_advanced_stats"
	OpStandings         = "get_standings"
	OpRecentGames       = "get_recent_games"
	OpHeadToHead        = "get_head_to_head"
)

// Invoker executes one logical data-fetch operation. A nil Failure
// means the Payload is valid; a non-nil Failure means the call failed
// with a typed reason. Implementations never panic across this
// boundary.
type Invoker interface {
	Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure)
}

// Func adapts a plain function to the Invoker interface.
type Func func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure)

func (f Func) Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
	return f(ctx, operation, params)
}

// Middleware decorates an Invoker with cross-cutting behavior
// (caching, quota, circuit breaking).
type Middleware func(Invoker) Invoker

// Chain applies middlewares right to left, so the first middleware in
// the list is the outermost wrapper.
func Chain(base Invoker, mws ...Middleware) Invoker {
	inv := base
	for i := len(mws) - 1; i >= 0; i-- {
		inv = mws[i](inv)
	}
	return inv
}
