// Package synthesizer turns execution results into a natural-language
// answer. Formatting is keyed by intent; confidence degrades with
// partial data and never exceeds the parse confidence.
package synthesizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// totalFailureCeiling caps confidence when no call produced data.
const totalFailureCeiling = 0.2

// Synthesizer renders answers from tool results.
type Synthesizer struct {
	logger logger.Logger
}

// New creates a synthesizer.
func New(log logger.Logger) *Synthesizer {
	return &Synthesizer{logger: log}
}

// Unsupported renders the response for a question no template matches.
func (s *Synthesizer) Unsupported(query *models.ParsedQuery) *models.SynthesizedResponse {
	return &models.SynthesizedResponse{
		Text:       "I can't answer that kind of question yet. Try asking about league leaders, player or team stats, comparisons, standings, or an upcoming matchup.",
		Confidence: math.Min(query.Confidence, totalFailureCeiling),
	}
}

// Synthesize formats the execution result for the query's intent.
// Confidence is min(parse confidence, fraction of calls that
// succeeded); a run with no successful call reports what failed
// instead of an answer.
func (s *Synthesizer) Synthesize(query *models.ParsedQuery, result *models.ExecutionResult) *models.SynthesizedResponse {
	ordered := result.InOrder()

	if len(ordered) == 0 {
		return s.Unsupported(query)
	}

	missing := failedOperations(ordered)
	if result.SuccessCount() == 0 {
		return &models.SynthesizedResponse{
			Text:       totalFailureText(query, ordered),
			Confidence: math.Min(query.Confidence, totalFailureCeiling),
			Missing:    missing,
		}
	}

	var text string
	switch query.Intent {
	case models.IntentLeaders:
		text = formatLeaders(query, ordered)
	case models.IntentComparison:
		text = formatComparison(query, ordered)
	case models.IntentEntityStats:
		text = formatEntityStats(query, ordered)
	case models.IntentGroupStats:
		text = formatGroupStats(query, ordered)
	case models.IntentStandings:
		text = formatStandings(query, ordered)
	case models.IntentContext:
		text = formatMatchupContext(query, ordered)
	case models.IntentTimeSeriesComparison:
		text = formatCareerTrajectory(query, ordered)
	default:
		text = formatGeneric(ordered)
	}

	if result.Partial {
		text += "\n\n" + missingSection(missing)
	}

	confidence := math.Min(query.Confidence, result.SuccessFraction())
	s.logger.Debug("Answer synthesized", map[string]interface{}{
		"intent":     string(query.Intent),
		"confidence": confidence,
		"missing":    len(missing),
	})

	return &models.SynthesizedResponse{
		Text:       text,
		Confidence: confidence,
		Sources:    succeededOperations(ordered),
		Missing:    missing,
	}
}

func failedOperations(results []models.ToolResult) []string {
	var out []string
	for _, r := range results {
		if !r.Success {
			out = append(out, r.Operation)
		}
	}
	return out
}

func succeededOperations(results []models.ToolResult) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range results {
		if r.Success && !seen[r.Operation] {
			seen[r.Operation] = true
			out = append(out, r.Operation)
		}
	}
	return out
}

func missingSection(missing []string) string {
	var b strings.Builder
	b.WriteString("Some data was unavailable; this answer is incomplete. Missing: ")
	b.WriteString(strings.Join(missing, ", "))
	b.WriteString(".")
	return b.String()
}

func totalFailureText(query *models.ParsedQuery, results []models.ToolResult) string {
	var b strings.Builder
	b.WriteString("I couldn't fetch the data needed to answer that.")
	for _, r := range results {
		if r.Failure != nil {
			fmt.Fprintf(&b, "\n- %s: %s", r.Operation, r.Failure.Message)
		}
	}
	return b.String()
}
