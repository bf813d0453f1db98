// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Badge is the tier shown next to a leaderboard entry.
type Badge string

const (
	BadgeSprout      Badge = "Sprout"
	BadgeTrailblazer Badge = "Trailblazer"
	BadgeEarthAlly   Badge = "Earth Ally"
	BadgeGuardian    Badge = "Guardian"
)

// LeaderboardEntry is one user's row on the leaderboard.
type LeaderboardEntry struct {
	UserID             string
	DisplayName        string
	EcoPoints          int
	TotalCO2           float64
	TotalSpend         float64
	TxCount            int
	EcoScorePercentile float64
	Badge              Badge
	UpdatedAt          time.Time
}
