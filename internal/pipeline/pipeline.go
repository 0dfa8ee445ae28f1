// Package pipeline wires the four answer stages: parse, plan, execute,
// synthesize. One Pipeline serves many concurrent questions; all shared
// state is read-only after construction.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghadfield32/nba-query-engine/internal/common/config"
	"github.com/ghadfield32/nba-query-engine/internal/common/errors"
	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/common/metrics"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/pipeline/executor"
	"github.com/ghadfield32/nba-query-engine/internal/pipeline/parser"
	"github.com/ghadfield32/nba-query-engine/internal/pipeline/planner"
	"github.com/ghadfield32/nba-query-engine/internal/pipeline/synthesizer"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
	"github.com/ghadfield32/nba-query-engine/internal/resolve"
	"github.com/ghadfield32/nba-query-engine/pkg/registry"
)

// Pipeline answers natural-language questions about league stats.
type Pipeline struct {
	parser      *parser.Parser
	planner     *planner.Planner
	executor    *executor.Executor
	synthesizer *synthesizer.Synthesizer
	logger      logger.Logger
}

// New assembles a pipeline from its collaborators.
func New(reg *registry.Registry, resolver resolve.Resolver, inv provider.Invoker, cfg config.PipelineConfig, log logger.Logger) *Pipeline {
	return &Pipeline{
		parser:      parser.NewParser(&parser.Config{WeakRuleWeight: cfg.WeakRuleWeight}, resolver, log),
		planner:     planner.New(reg, cfg, log),
		executor:    executor.New(inv, cfg, log),
		synthesizer: synthesizer.New(log),
		logger:      log,
	}
}

// Answer runs one question through all four stages. It always returns
// an answer: questions that cannot be served degrade to a low-confidence
// explanation rather than an error.
func (p *Pipeline) Answer(ctx context.Context, question string) *models.Answer {
	started := time.Now()
	requestID := uuid.New().String()
	log := p.logger.WithFields(map[string]interface{}{"request_id": requestID})

	parseStart := time.Now()
	query := p.parser.Parse(ctx, question)
	metrics.StageDuration.WithLabelValues("parse").Observe(time.Since(parseStart).Seconds())
	log.Info("Question parsed", map[string]interface{}{
		"intent":     string(query.Intent),
		"entities":   len(query.Entities),
		"confidence": query.Confidence,
	})
	metrics.QueriesTotal.WithLabelValues(string(query.Intent)).Inc()

	planStart := time.Now()
	plan, err := p.planner.Plan(query)
	metrics.StageDuration.WithLabelValues("plan").Observe(time.Since(planStart).Seconds())
	if err != nil {
		log.Warn("No plan for question", map[string]interface{}{
			"intent": string(query.Intent),
			"code":   string(errors.CodeOf(err)),
		})
		resp := p.synthesizer.Unsupported(query)
		return answerFrom(resp, started, false)
	}

	execStart := time.Now()
	result := p.executor.Execute(ctx, plan)
	metrics.StageDuration.WithLabelValues("execute").Observe(time.Since(execStart).Seconds())

	synthStart := time.Now()
	resp := p.synthesizer.Synthesize(query, result)
	metrics.StageDuration.WithLabelValues("synthesize").Observe(time.Since(synthStart).Seconds())

	log.Info("Question answered", map[string]interface{}{
		"intent":      string(query.Intent),
		"template_id": plan.TemplateID,
		"partial":     result.Partial,
		"confidence":  resp.Confidence,
		"took_ms":     time.Since(started).Milliseconds(),
	})

	return answerFrom(resp, started, result.Partial)
}

func answerFrom(resp *models.SynthesizedResponse, started time.Time, partial bool) *models.Answer {
	return &models.Answer{
		Text:       resp.Text,
		Confidence: resp.Confidence,
		TookMs:     time.Since(started).Milliseconds(),
		Partial:    partial,
	}
}
