package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ghadfield32/nba-query-engine/internal/models"
)

var placeholderPattern = regexp.MustCompile(`^\{\{([a-z_]+(?:\.[A-Za-z0-9_]+)*)\}\}$`)

// bindContext is the flattened view of a ParsedQuery that template
// placeholders resolve against.
type bindContext struct {
	entities  []models.EntityReference
	metrics   []string
	season    string
	timeRange *models.TimeRange
	modifiers map[string]interface{}
}

// bindValue resolves one parameter expression. Placeholders return
// (value, true) when resolvable and (nil, false) when their source
// field is absent — absent optional parameters are omitted from the
// call. Non-placeholder values pass through as literals.
func bindValue(expr string, bctx *bindContext) (interface{}, bool) {
	m := placeholderPattern.FindStringSubmatch(expr)
	if m == nil {
		// Literal. Numeric literals become ints so providers see
		// typed parameters.
		if n, err := strconv.Atoi(expr); err == nil {
			return n, true
		}
		return expr, true
	}

	path := strings.Split(m[1], ".")
	switch path[0] {
	case "entities":
		return bindEntity(path, bctx.entities)
	case "metrics":
		if len(path) != 2 {
			return nil, false
		}
		i, err := strconv.Atoi(path[1])
		if err != nil || i < 0 || i >= len(bctx.metrics) {
			return nil, false
		}
		return bctx.metrics[i], true
	case "time":
		return bindTime(path, bctx)
	case "modifiers":
		if len(path) != 2 || bctx.modifiers == nil {
			return nil, false
		}
		v, ok := bctx.modifiers[path[1]]
		return v, ok
	default:
		return nil, false
	}
}

func bindEntity(path []string, entities []models.EntityReference) (interface{}, bool) {
	if len(path) != 3 {
		return nil, false
	}
	i, err := strconv.Atoi(path[1])
	if err != nil || i < 0 || i >= len(entities) {
		return nil, false
	}
	switch path[2] {
	case "id":
		return entities[i].ID, true
	case "name":
		return entities[i].Name, true
	case "kind":
		return string(entities[i].Kind), true
	default:
		return nil, false
	}
}

func bindTime(path []string, bctx *bindContext) (interface{}, bool) {
	if len(path) != 2 {
		return nil, false
	}
	switch path[1] {
	case "season":
		return bctx.season, bctx.season != ""
	case "start":
		if bctx.timeRange != nil && bctx.timeRange.Kind == models.TimeRangeDateSpan {
			return bctx.timeRange.StartDate, true
		}
		return nil, false
	case "end":
		if bctx.timeRange != nil && bctx.timeRange.Kind == models.TimeRangeDateSpan {
			return bctx.timeRange.EndDate, true
		}
		return nil, false
	case "last_n":
		if bctx.timeRange != nil && bctx.timeRange.Kind == models.TimeRangeRelative && bctx.timeRange.LastNGames > 0 {
			return bctx.timeRange.LastNGames, true
		}
		return nil, false
	default:
		return nil, false
	}
}
