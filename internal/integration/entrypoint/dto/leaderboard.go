package dto

import (
	"time"

	"github.com/ecoimpact/backend/internal/application/usecase/leaderboard"
)

// LeaderboardEntryResponse mirrors LeaderboardEntry plus its 1-based rank.
type LeaderboardEntryResponse struct {
	Rank               int     `json:"rank"`
	UserID             string  `json:"user_id"`
	DisplayName        string  `json:"display_name"`
	EcoPoints          int     `json:"eco_points"`
	TotalCO2           float64 `json:"total_co2"`
	TotalSpend         float64 `json:"total_spend"`
	TxCount            int     `json:"tx_count"`
	EcoScorePercentile float64 `json:"eco_score_percentile"`
	Badge              string  `json:"badge"`
}

// LeaderboardResponse is the /leaderboard payload. UserRank is 0 when the
// caller is not on the board.
type LeaderboardResponse struct {
	Entries     []LeaderboardEntryResponse `json:"entries"`
	UserRank    int                        `json:"user_rank"`
	Source      string                     `json:"source"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// ToLeaderboardResponse converts the leaderboard use case output.
func ToLeaderboardResponse(output *leaderboard.GetLeaderboardOutput) LeaderboardResponse {
	entries := make([]LeaderboardEntryResponse, 0, len(output.Entries))
	for _, ranked := range output.Entries {
		e := ranked.Entry
		entries = append(entries, LeaderboardEntryResponse{
			Rank:               ranked.Rank,
			UserID:             e.UserID,
			DisplayName:        e.DisplayName,
			EcoPoints:          e.EcoPoints,
			TotalCO2:           e.TotalCO2,
			TotalSpend:         e.TotalSpend,
			TxCount:            e.TxCount,
			EcoScorePercentile: e.EcoScorePercentile,
			Badge:              string(e.Badge),
		})
	}
	return LeaderboardResponse{
		Entries:     entries,
		UserRank:    output.UserRank,
		Source:      output.Source,
		GeneratedAt: output.GeneratedAt,
	}
}
