// Package planner maps parsed queries onto execution plans by selecting
// an answer template from the registry and binding its parameter
// expressions. Planning is pure: the same parsed query always yields
// the same plan.
package planner

import (
	"fmt"

	"github.com/ghadfield32/nba-query-engine/internal/common/config"
	"github.com/ghadfield32/nba-query-engine/internal/common/errors"
	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/pkg/registry"
)

// Planner turns a ParsedQuery into an ExecutionPlan.
type Planner struct {
	registry *registry.Registry
	config   config.PipelineConfig
	logger   logger.Logger
}

// New creates a planner backed by the given template registry.
func New(reg *registry.Registry, cfg config.PipelineConfig, log logger.Logger) *Planner {
	return &Planner{
		registry: reg,
		config:   cfg,
		logger:   log,
	}
}

// Plan selects and binds a template for the query. It returns a
// PLAN_UNMATCHED error when the intent is unknown, no template fits, or
// the query does not carry the entities the template requires.
func (p *Planner) Plan(query *models.ParsedQuery) (*models.ExecutionPlan, error) {
	if query.Intent == models.IntentUnknown {
		return nil, errors.NewPlanUnmatchedError("intent could not be classified")
	}

	tpl, ok := p.registry.Select(query.Intent, uniformKind(query.Entities), len(query.Entities))
	if !ok {
		return nil, errors.NewPlanUnmatchedError(fmt.Sprintf(
			"no template for intent %q with %d entities", query.Intent, len(query.Entities)))
	}

	bctx := p.buildContext(query, tpl)

	calls := make([]models.ToolCall, 0, len(tpl.Steps))
	multiGroup := false
	for i, step := range tpl.Steps {
		params := make(map[string]interface{}, len(step.Params))
		for name, expr := range step.Params {
			value, ok := bindValue(expr, bctx)
			if !ok {
				// Unresolvable placeholder means the query lacks an
				// optional field; the parameter is simply omitted.
				continue
			}
			params[name] = value
		}
		if step.Group > 0 {
			multiGroup = true
		}
		calls = append(calls, models.ToolCall{
			ID:        fmt.Sprintf("%s-%02d", tpl.TemplateID, i),
			Operation: step.Operation,
			Params:    params,
			Group:     step.Group,
		})
	}

	p.logger.Debug("Execution plan built", map[string]interface{}{
		"template_id": tpl.TemplateID,
		"calls":       len(calls),
		"groups":      multiGroup,
	})

	return &models.ExecutionPlan{
		TemplateID: tpl.TemplateID,
		Calls:      calls,
		MultiGroup: multiGroup,
	}, nil
}

// buildContext flattens the query into the view binding expressions
// resolve against, applying metric, season, and row-count defaults.
func (p *Planner) buildContext(query *models.ParsedQuery, tpl *registry.Template) *bindContext {
	metrics := query.Metrics
	if len(metrics) == 0 {
		metrics = tpl.DefaultMetrics
	}
	if len(metrics) == 0 {
		metrics = models.Profile(query.Intent).DefaultMetrics
	}

	modifiers := make(map[string]interface{}, len(query.Modifiers)+1)
	for k, v := range query.Modifiers {
		modifiers[k] = v
	}
	if _, ok := modifiers[models.ModifierTopN]; !ok {
		modifiers[models.ModifierTopN] = p.config.DefaultLeaderRows
	}

	return &bindContext{
		entities:  query.Entities,
		metrics:   metrics,
		season:    p.resolveSeason(query.TimeRange),
		timeRange: query.TimeRange,
		modifiers: modifiers,
	}
}

// resolveSeason maps any time range onto a concrete season label.
// Relative ranges and date spans fall back to the configured current
// season; providers that honor date spans read time.start/time.end
// directly.
func (p *Planner) resolveSeason(tr *models.TimeRange) string {
	if tr != nil && tr.Kind == models.TimeRangeSeason && tr.Season != "" {
		return tr.Season
	}
	return p.config.DefaultSeason
}

// uniformKind returns the shared kind of all entities, or empty when
// the list is empty or mixed. Kind-restricted templates never match a
// mixed entity list.
func uniformKind(entities []models.EntityReference) models.EntityKind {
	if len(entities) == 0 {
		return ""
	}
	kind := entities[0].Kind
	for _, e := range entities[1:] {
		if e.Kind != kind {
			return ""
		}
	}
	return kind
}
