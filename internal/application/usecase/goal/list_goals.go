// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID string
}

// ListGoalsOutput is the versioned goals payload.
type ListGoalsOutput struct {
	SchemaVersion string
	Goals         []*entity.Goal
}

// ListGoalsUseCase passes a user's goals through from the goal store.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal listing. A stored goal that does not match the
// v1 shape fails the whole request instead of being silently dropped.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalStoreUnavailable,
			"failed to load goals",
			errors.Join(domainerror.ErrGoalStoreUnavailable, err),
		)
	}

	for _, g := range goals {
		if !validShape(g) {
			id := ""
			if g != nil {
				id = g.ID
			}
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalShape,
				fmt.Sprintf("stored goal %q is malformed", id),
				domainerror.ErrInvalidGoalShape,
			)
		}
	}

	if goals == nil {
		goals = []*entity.Goal{}
	}

	return &ListGoalsOutput{
		SchemaVersion: entity.GoalSchemaVersion,
		Goals:         goals,
	}, nil
}
