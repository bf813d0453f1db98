// Package leaderboard ranks live per-user aggregates merged with demo entries.
package leaderboard

import (
	"sort"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// DemotionPolicy pins one identity to the bottom of the board regardless of points.
type DemotionPolicy struct {
	Enabled bool
	UserID  string
}

func (p DemotionPolicy) demoted(e *entity.LeaderboardEntry) bool {
	return p.Enabled && e.UserID == p.UserID
}

// Rank merges live and fallback entries into a board of at most maxSize rows.
//
// Live entries always come first in selection: fallback entries whose user_id is
// not live only fill the slots left over. When there are more live entries than
// maxSize the sorted live list is truncated. The board is ordered by eco_points
// descending, then user_id ascending, with the demoted identity last.
// Inputs are not modified.
func Rank(live, fallback []*entity.LeaderboardEntry, maxSize int, policy DemotionPolicy) []*entity.LeaderboardEntry {
	if maxSize <= 0 {
		return []*entity.LeaderboardEntry{}
	}

	seen := make(map[string]struct{}, len(live))
	selected := make([]*entity.LeaderboardEntry, 0, maxSize)
	for _, e := range sorted(live, policy) {
		if _, dup := seen[e.UserID]; dup {
			continue
		}
		seen[e.UserID] = struct{}{}
		selected = append(selected, e)
	}
	if len(selected) > maxSize {
		selected = selected[:maxSize]
	}

	for _, e := range sorted(fallback, policy) {
		if len(selected) >= maxSize {
			break
		}
		if _, dup := seen[e.UserID]; dup {
			continue
		}
		seen[e.UserID] = struct{}{}
		selected = append(selected, e)
	}

	return sorted(selected, policy)
}

// sorted returns a sorted copy of entries, skipping nil rows.
func sorted(entries []*entity.LeaderboardEntry, policy DemotionPolicy) []*entity.LeaderboardEntry {
	out := make([]*entity.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := policy.demoted(out[i]), policy.demoted(out[j])
		if di != dj {
			return dj
		}
		if out[i].EcoPoints != out[j].EcoPoints {
			return out[i].EcoPoints > out[j].EcoPoints
		}
		return out[i].UserID < out[j].UserID
	})

	return out
}
