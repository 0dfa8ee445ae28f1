// Package parser turns free-text questions into structured queries.
package parser

import (
	"context"
	"strings"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/resolve"
)

// Config holds parser tunables.
type Config struct {
	// WeakRuleWeight scales confidence when intent matched only a
	// fallback rule. The exact value is tunable, not contractual.
	WeakRuleWeight float64
}

type Parser struct {
	config   *Config
	resolver resolve.Resolver
	logger   logger.Logger
}

func NewParser(config *Config, resolver resolve.Resolver, log logger.Logger) *Parser {
	if config.WeakRuleWeight == 0 {
		config.WeakRuleWeight = 0.6
	}
	return &Parser{
		config:   config,
		resolver: resolver,
		logger:   log.WithFields(map[string]interface{}{"stage": "parser"}),
	}
}

// Parse never fails: malformed input degrades to IntentUnknown with
// confidence at most 0.3 so downstream stages can decline gracefully.
func (p *Parser) Parse(ctx context.Context, text string) *models.ParsedQuery {
	lower := strings.ToLower(text)

	entities := p.extractEntities(ctx, text)
	metrics := extractMetrics(lower)
	timeRange := extractTimeRange(lower)
	modifiers := extractModifiers(lower)

	intent, strong := classifyIntent(lower)
	if intent == models.IntentUnknown && len(entities) > 0 {
		// Fallback rule: a resolved subject with no other marker is a
		// stats question about that subject. Strong only when the
		// question also states a time scope.
		if entities[0].Kind == models.EntityTeam {
			intent = models.IntentGroupStats
		} else {
			intent = models.IntentEntityStats
		}
		strong = timeRange != nil
	}

	profile := models.Profile(intent)

	// Surplus entities beyond the intent's arity are kept as a
	// modifier, never an error.
	if profile.MaxEntities > 0 && len(entities) > profile.MaxEntities {
		surplus := make([]string, 0, len(entities)-profile.MaxEntities)
		for _, e := range entities[profile.MaxEntities:] {
			surplus = append(surplus, e.Name)
		}
		modifiers[models.ModifierSurplusEntities] = surplus
		entities = entities[:profile.MaxEntities]
	}

	if timeRange == nil && profile.RequiresTime {
		timeRange = models.CurrentRange()
	}

	confidence := p.scoreConfidence(intent, strong, entities, profile)

	query := &models.ParsedQuery{
		Raw:        text,
		Intent:     intent,
		Entities:   entities,
		Metrics:    metrics,
		TimeRange:  timeRange,
		Modifiers:  modifiers,
		Confidence: confidence,
	}

	p.logger.Debug("question parsed", map[string]interface{}{
		"intent":      string(intent),
		"entityCount": len(entities),
		"metrics":     metrics,
		"confidence":  confidence,
	})

	return query
}

// extractEntities scans capitalized runs and abbreviations, resolving
// each candidate span. Unresolvable spans are skipped silently.
func (p *Parser) extractEntities(ctx context.Context, text string) []models.EntityReference {
	var out []models.EntityReference
	seen := map[string]bool{}

	for _, run := range capRunPattern.FindAllString(text, -1) {
		tokens := strings.Fields(run)

		// Strip leading question words that happen to be capitalized.
		for len(tokens) > 0 && stopwords[strings.ToLower(tokens[0])] {
			tokens = tokens[1:]
		}
		if len(tokens) == 0 {
			continue
		}

		for _, span := range candidateSpans(tokens) {
			ref, err := p.resolver.Resolve(ctx, span, resolve.KindAny)
			if err != nil {
				continue
			}
			if seen[ref.ID] {
				break
			}
			seen[ref.ID] = true
			out = append(out, *ref)
			break
		}
	}

	return out
}

// candidateSpans orders sub-spans of a token run from most to least
// specific: the full run first, then shrinking windows anchored at the
// front, then at the back.
func candidateSpans(tokens []string) []string {
	var spans []string
	for n := len(tokens); n >= 1; n-- {
		spans = append(spans, strings.Join(tokens[:n], " "))
	}
	for n := len(tokens) - 1; n >= 1; n-- {
		spans = append(spans, strings.Join(tokens[len(tokens)-n:], " "))
	}
	return spans
}

// scoreConfidence combines entity-resolution confidence with rule
// match strength.
func (p *Parser) scoreConfidence(intent models.Intent, strong bool, entities []models.EntityReference, profile models.IntentProfile) float64 {
	if intent == models.IntentUnknown {
		return 0.2
	}

	base := 0.9
	if len(entities) > 0 {
		sum := 0.0
		for _, e := range entities {
			sum += e.Confidence
		}
		base = sum / float64(len(entities))
	}

	weight := 1.0
	if !strong {
		weight = p.config.WeakRuleWeight
	}
	confidence := base * weight

	// Required subjects missing: degrade, don't fail.
	if len(entities) < profile.MinEntities {
		confidence *= 0.5
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
