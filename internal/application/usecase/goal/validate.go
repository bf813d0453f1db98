// Package goal contains goal-related use cases.
package goal

import (
	"math"
	"strings"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// validShape reports whether g can be served as a v1 goal.
func validShape(g *entity.Goal) bool {
	if g == nil || g.ID == "" || strings.TrimSpace(g.Title) == "" {
		return false
	}
	if !finite(g.Current) || !finite(g.Target) {
		return false
	}
	return g.Target > 0 && g.Current >= 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
