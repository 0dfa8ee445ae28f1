package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// lexEntry is one known subject with its alternate names.
type lexEntry struct {
	kind    models.EntityKind
	id      string
	name    string
	aliases []string
}

// LexiconResolver resolves names against a static in-memory alias
// table. Confidence tiers: exact canonical match 1.0, alias match
// 0.95, unique last-word match 0.85, substring match 0.7.
type LexiconResolver struct {
	entries []lexEntry
	// normalized lookup tables built once at construction
	byExact map[string]int
	byAlias map[string]int
}

// NewLexiconResolver builds the resolver over the built-in league
// lexicon.
func NewLexiconResolver() *LexiconResolver {
	return newLexiconResolver(leagueLexicon)
}

func newLexiconResolver(entries []lexEntry) *LexiconResolver {
	r := &LexiconResolver{
		entries: entries,
		byExact: make(map[string]int, len(entries)),
		byAlias: make(map[string]int),
	}
	for i, e := range entries {
		r.byExact[normalize(e.name)] = i
		for _, a := range e.aliases {
			r.byAlias[normalize(a)] = i
		}
	}
	return r
}

func (r *LexiconResolver) Resolve(ctx context.Context, text string, kindHint models.EntityKind) (*models.EntityReference, error) {
	norm := normalize(text)
	if norm == "" {
		return nil, &NotFoundError{Text: text}
	}

	if i, ok := r.byExact[norm]; ok && kindMatches(r.entries[i].kind, kindHint) {
		return r.reference(i, 1.0), nil
	}
	if i, ok := r.byAlias[norm]; ok && kindMatches(r.entries[i].kind, kindHint) {
		return r.reference(i, 0.95), nil
	}

	// Unique last-word match, e.g. "Jokic" for "Nikola Jokic".
	var lastWordHits []int
	for i, e := range r.entries {
		if !kindMatches(e.kind, kindHint) {
			continue
		}
		words := strings.Fields(normalize(e.name))
		if len(words) > 0 && words[len(words)-1] == norm {
			lastWordHits = append(lastWordHits, i)
		}
	}
	if len(lastWordHits) == 1 {
		return r.reference(lastWordHits[0], 0.85), nil
	}

	// Substring fallback.
	var substrHits []int
	for i, e := range r.entries {
		if !kindMatches(e.kind, kindHint) {
			continue
		}
		if strings.Contains(normalize(e.name), norm) {
			substrHits = append(substrHits, i)
		}
	}
	if len(substrHits) == 1 {
		return r.reference(substrHits[0], 0.7), nil
	}

	return nil, &NotFoundError{
		Text:        text,
		Suggestions: r.suggestions(norm, kindHint, append(lastWordHits, substrHits...)),
	}
}

func (r *LexiconResolver) reference(i int, confidence float64) *models.EntityReference {
	e := r.entries[i]
	aliases := make([]string, len(e.aliases))
	copy(aliases, e.aliases)
	return &models.EntityReference{
		Kind:       e.kind,
		ID:         e.id,
		Name:       e.name,
		Confidence: confidence,
		Aliases:    aliases,
	}
}

func (r *LexiconResolver) suggestions(norm string, kindHint models.EntityKind, hits []int) []string {
	seen := map[string]bool{}
	var out []string
	for _, i := range hits {
		if !seen[r.entries[i].name] {
			seen[r.entries[i].name] = true
			out = append(out, r.entries[i].name)
		}
	}
	if len(out) == 0 && len(norm) >= 3 {
		for _, e := range r.entries {
			if !kindMatches(e.kind, kindHint) {
				continue
			}
			if strings.HasPrefix(normalize(e.name), norm[:3]) && !seen[e.name] {
				seen[e.name] = true
				out = append(out, e.name)
			}
		}
	}
	sort.Strings(out)
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func kindMatches(kind, hint models.EntityKind) bool {
	return hint == KindAny || kind == hint
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
