package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// ElasticResolver resolves names by fuzzy search against indexed
// player and team documents. It backs up the lexicon for misspellings
// and out-of-lexicon names.
type ElasticResolver struct {
	client    *elasticsearch.Client
	playerIdx string
	teamIdx   string
	logger    logger.Logger
}

func NewElasticResolver(client *elasticsearch.Client, playerIdx, teamIdx string, log logger.Logger) *ElasticResolver {
	return &ElasticResolver{
		client:    client,
		playerIdx: playerIdx,
		teamIdx:   teamIdx,
		logger:    log.WithFields(map[string]interface{}{"component": "elastic-resolver"}),
	}
}

func (r *ElasticResolver) Resolve(ctx context.Context, text string, kindHint models.EntityKind) (*models.EntityReference, error) {
	indices := r.indicesFor(kindHint)

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     text,
				"fields":    []string{"name^3", "aliases^2"},
				"fuzziness": "AUTO",
			},
		},
		"size": 5,
	}
	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: indices,
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("entity search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("entity search error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			MaxScore float64 `json:"max_score"`
			Hits     []struct {
				Index  string  `json:"_index"`
				Score  float64 `json:"_score"`
				Source struct {
					ID      string   `json:"id"`
					Name    string   `json:"name"`
					Aliases []string `json:"aliases"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode entity search response: %w", err)
	}

	if len(parsed.Hits.Hits) == 0 {
		return nil, &NotFoundError{Text: text}
	}

	best := parsed.Hits.Hits[0]

	// Score below the usable floor: report alternatives instead of a
	// low-quality match.
	confidence := scoreToConfidence(best.Score, parsed.Hits.MaxScore)
	if confidence < 0.5 {
		suggestions := make([]string, 0, len(parsed.Hits.Hits))
		for _, h := range parsed.Hits.Hits {
			suggestions = append(suggestions, h.Source.Name)
		}
		return nil, &NotFoundError{Text: text, Suggestions: suggestions}
	}

	kind := models.EntityPlayer
	if best.Index == r.teamIdx {
		kind = models.EntityTeam
	}

	return &models.EntityReference{
		Kind:       kind,
		ID:         best.Source.ID,
		Name:       best.Source.Name,
		Confidence: confidence,
		Aliases:    best.Source.Aliases,
	}, nil
}

func (r *ElasticResolver) indicesFor(kindHint models.EntityKind) []string {
	switch kindHint {
	case models.EntityPlayer:
		return []string{r.playerIdx}
	case models.EntityTeam:
		return []string{r.teamIdx}
	default:
		return []string{r.playerIdx, r.teamIdx}
	}
}

// scoreToConfidence maps a hit score into the 0..1 confidence scale
// relative to the best score in the result set.
func scoreToConfidence(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	c := 0.5 + 0.5*(score/maxScore)
	if c > 0.99 {
		c = 0.99 // fuzzy hits never claim exact-match certainty
	}
	return c
}

// ChainResolver tries resolvers in order until one succeeds. The last
// NotFoundError wins when all miss.
type ChainResolver struct {
	resolvers []Resolver
}

func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

func (c *ChainResolver) Resolve(ctx context.Context, text string, kindHint models.EntityKind) (*models.EntityReference, error) {
	var lastErr error
	for _, r := range c.resolvers {
		ref, err := r.Resolve(ctx, text, kindHint)
		if err == nil {
			return ref, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &NotFoundError{Text: text}
	}
	return nil, lastErr
}
