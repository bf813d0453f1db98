// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// CoachingWriter rewrites suggestion copy. Implementations must only change
// Title and Description and must return suggestions in input order.
type CoachingWriter interface {
	// Rewrite returns personalized copies of the suggestions.
	Rewrite(ctx context.Context, userID string, suggestions []entity.CoachingSuggestion) ([]entity.CoachingSuggestion, error)

	// IsAvailable checks if the writer is configured.
	IsAvailable() bool
}
