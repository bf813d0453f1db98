package dto

import (
	"github.com/ecoimpact/backend/internal/application/usecase/goal"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title   string  `json:"title" binding:"required,max=120"`
	Current float64 `json:"current" binding:"gte=0"`
	Target  float64 `json:"target" binding:"required,gt=0"`
	Unit    string  `json:"unit" binding:"max=20"`
}

// GoalResponse represents a single goal in the v1 goal schema.
type GoalResponse struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Unit    string  `json:"unit"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	SchemaVersion string         `json:"schema_version"`
	Goals         []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:      g.ID,
		Title:   g.Title,
		Current: g.Current,
		Target:  g.Target,
		Unit:    g.Unit,
	}
}

// ToGoalListResponse converts the list use case output.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	goals := make([]GoalResponse, 0, len(output.Goals))
	for _, g := range output.Goals {
		goals = append(goals, ToGoalResponse(g))
	}
	return GoalListResponse{
		SchemaVersion: output.SchemaVersion,
		Goals:         goals,
	}
}
