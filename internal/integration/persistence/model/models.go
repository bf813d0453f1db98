// Package model defines database models for persistence layer.
package model

// All returns every model managed by AutoMigrate, keyed by table name.
func All() map[string]any {
	return map[string]any{
		"transactions":        &TransactionModel{},
		"goals":               &GoalModel{},
		"users":               &UserModel{},
		"coaching_acks":       &CoachingAckModel{},
		"leaderboard_entries": &LeaderboardEntryModel{},
	}
}
