// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// LeaderboardRepository provides pre-aggregated live leaderboard candidates.
type LeaderboardRepository interface {
	// ListCandidates returns the live per-user aggregates.
	ListCandidates(ctx context.Context) ([]*entity.LeaderboardEntry, error)
}

// LeaderboardWriter stores refreshed per-user aggregates.
type LeaderboardWriter interface {
	// ReplaceEntries atomically replaces the stored board with entries.
	// Users not in entries lose their row.
	ReplaceEntries(ctx context.Context, entries []*entity.LeaderboardEntry) error
}
