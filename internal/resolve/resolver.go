// Package resolve maps free-text names to typed player and team
// references with a confidence score.
package resolve

import (
	"context"
	"fmt"

	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// NotFoundError reports an unresolvable name along with close
// alternatives worth suggesting to the user.
type NotFoundError struct {
	Text        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entity matches %q", e.Text)
}

// Resolver maps a free-text span to an entity reference. kindHint
// narrows the search; KindAny searches both players and teams.
type Resolver interface {
	Resolve(ctx context.Context, text string, kindHint models.EntityKind) (*models.EntityReference, error)
}

// KindAny means no kind preference.
const KindAny models.EntityKind = ""
