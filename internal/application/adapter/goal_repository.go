// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// FindByUserID retrieves all goals for a given user.
	FindByUserID(ctx context.Context, userID string) ([]*entity.Goal, error)

	// Create creates a new goal.
	Create(ctx context.Context, goal *entity.Goal) error
}
