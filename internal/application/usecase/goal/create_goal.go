// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID  string
	Title   string
	Current float64
	Target  float64
	Unit    string
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	now      func() time.Time
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, now func() time.Time) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		now:      now,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	now := uc.now().UTC()
	goal := &entity.Goal{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Title:     strings.TrimSpace(input.Title),
		Current:   input.Current,
		Target:    input.Target,
		Unit:      strings.TrimSpace(input.Unit),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.UserID == "" || !validShape(goal) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalInput,
			"title is required and target must be greater than zero",
			domainerror.ErrInvalidGoalInput,
		)
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalStoreUnavailable,
			"failed to create goal",
			errors.Join(domainerror.ErrGoalStoreUnavailable, err),
		)
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
