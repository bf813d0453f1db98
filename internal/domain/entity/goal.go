// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// GoalSchemaVersion is the only goal payload version served by the API.
const GoalSchemaVersion = "v1"

// Goal is a user-facing sustainability goal such as "Fly less this quarter".
// Goals are owned by the goal store; the API only passes them through.
type Goal struct {
	ID        string
	UserID    string
	Title     string
	Current   float64
	Target    float64
	Unit      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
