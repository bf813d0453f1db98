package dto

import (
	"time"

	"github.com/ecoimpact/backend/internal/application/usecase/coaching"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// AckRequest represents the request body for acknowledging a suggestion.
// UserID is only used when the caller is not authenticated.
type AckRequest struct {
	SuggestionID string `json:"suggestion_id"`
	Action       string `json:"action"`
	UserID       string `json:"user_id"`
}

// AckResponse represents a recorded acknowledgement.
type AckResponse struct {
	Status       string    `json:"status"`
	UserID       string    `json:"user_id"`
	SuggestionID string    `json:"suggestion_id"`
	Action       string    `json:"action"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// SuggestionResponse mirrors CoachingSuggestion.
type SuggestionResponse struct {
	SuggestionID       string  `json:"suggestion_id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	CategoryID         string  `json:"category_id"`
	CategoryName       string  `json:"category_name"`
	EstimatedSavingsKg float64 `json:"estimated_savings_kg"`
	EnvLabel           string  `json:"env_label"`
	Year               int     `json:"year"`
	Week               int     `json:"week"`
	Status             string  `json:"status,omitempty"`
}

// SuggestionsResponse is the /coaching/suggestions payload.
type SuggestionsResponse struct {
	UserID       string                `json:"user_id"`
	GeneratedAt  time.Time             `json:"generated_at"`
	WeekProfiles []WeekProfileResponse `json:"week_profiles"`
	Suggestions  []SuggestionResponse  `json:"suggestions"`
	Source       string                `json:"source"`
}

// ToSuggestionResponse converts a CoachingSuggestion.
func ToSuggestionResponse(s entity.CoachingSuggestion) SuggestionResponse {
	return SuggestionResponse{
		SuggestionID:       s.SuggestionID,
		Title:              s.Title,
		Description:        s.Description,
		CategoryID:         s.CategoryID,
		CategoryName:       s.CategoryName,
		EstimatedSavingsKg: s.EstimatedSavingsKg,
		EnvLabel:           string(s.EnvLabel),
		Year:               s.Year,
		Week:               s.Week,
		Status:             s.Status,
	}
}

// ToSuggestionsResponse converts the suggestions use case output.
func ToSuggestionsResponse(output *coaching.GetSuggestionsOutput) SuggestionsResponse {
	suggestions := make([]SuggestionResponse, 0, len(output.Suggestions))
	for _, s := range output.Suggestions {
		suggestions = append(suggestions, ToSuggestionResponse(s))
	}
	return SuggestionsResponse{
		UserID:       output.UserID,
		GeneratedAt:  output.GeneratedAt,
		WeekProfiles: ToWeekProfileResponses(output.Profiles),
		Suggestions:  suggestions,
		Source:       output.Source,
	}
}

// ToAckResponse converts the acknowledge use case output.
func ToAckResponse(output *coaching.AcknowledgeOutput) AckResponse {
	return AckResponse{
		Status:       output.Status,
		UserID:       output.UserID,
		SuggestionID: output.SuggestionID,
		Action:       string(output.Action),
		RecordedAt:   output.RecordedAt,
	}
}
