// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// AckAction is a user's response to a coaching suggestion.
type AckAction string

const (
	AckActionAccepted  AckAction = "accepted"
	AckActionDismissed AckAction = "dismissed"
)

// IsValid checks if the action is one of the terminal acknowledgement states.
func (a AckAction) IsValid() bool {
	return a == AckActionAccepted || a == AckActionDismissed
}

// SuggestionStatusNew marks a suggestion that has not been acknowledged yet.
const SuggestionStatusNew = "new"

// CoachingSuggestion is an improvement hint derived from a week profile.
type CoachingSuggestion struct {
	SuggestionID       string
	Title              string
	Description        string
	CategoryID         string
	CategoryName       string
	EstimatedSavingsKg float64
	EnvLabel           EnvLabel
	Year               int
	Week               int
	Status             string
}

// CoachingAck records the acknowledgement state of a suggestion for a user.
type CoachingAck struct {
	UserID       string
	SuggestionID string
	Action       AckAction
	RecordedAt   time.Time
}
