package leaderboard

import (
	"math"
	"time"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// maxActivityPoints caps the points earned from transaction volume.
const maxActivityPoints = 100

// Badge thresholds on eco_points.
const (
	guardianPoints    = 900
	earthAllyPoints   = 750
	trailblazerPoints = 500
)

// EcoPoints converts a score and activity volume into leaderboard points.
// It is monotone in both arguments.
func EcoPoints(score float64, txCount int) int {
	if txCount < 0 {
		txCount = 0
	}
	return int(math.Round(score*10)) + min(txCount, maxActivityPoints)
}

// BadgeFor returns the tier for the given points.
func BadgeFor(points int) entity.Badge {
	switch {
	case points >= guardianPoints:
		return entity.BadgeGuardian
	case points >= earthAllyPoints:
		return entity.BadgeEarthAlly
	case points >= trailblazerPoints:
		return entity.BadgeTrailblazer
	default:
		return entity.BadgeSprout
	}
}

// BuildEntry turns a user's score summary into a leaderboard row.
func BuildEntry(userID, displayName string, summary entity.ScoreSummary, updatedAt time.Time) *entity.LeaderboardEntry {
	points := EcoPoints(summary.Score, summary.TxCount)
	return &entity.LeaderboardEntry{
		UserID:             userID,
		DisplayName:        displayName,
		EcoPoints:          points,
		TotalCO2:           summary.TotalCO2e.InexactFloat64(),
		TotalSpend:         summary.TotalSpend.InexactFloat64(),
		TxCount:            summary.TxCount,
		EcoScorePercentile: summary.Percentile,
		Badge:              BadgeFor(points),
		UpdatedAt:          updatedAt,
	}
}
