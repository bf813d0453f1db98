// Package scoring contains eco score use cases.
package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecoimpact/backend/internal/application/adapter"
)

// Source values tell clients whether a payload is fresh.
const (
	SourceLive  = "live"
	SourceCache = "cache"
)

func scoreSnapshotKey(userID, periodLabel string) string {
	return fmt.Sprintf("eco:score:%s:%s", userID, periodLabel)
}

func monthlySnapshotKey(userID string, months int) string {
	return fmt.Sprintf("eco:monthly:%s:%d", userID, months)
}

// saveSnapshot stores value when a cache is configured. Failures are logged only.
func saveSnapshot(ctx context.Context, cache adapter.SnapshotCache, key string, value any) {
	if cache == nil {
		return
	}
	if err := cache.Save(ctx, key, value); err != nil {
		slog.Warn("failed to save snapshot", "key", key, "error", err)
	}
}

// loadSnapshot reads a snapshot when a cache is configured.
func loadSnapshot(ctx context.Context, cache adapter.SnapshotCache, key string, dest any) bool {
	if cache == nil {
		return false
	}
	found, err := cache.Load(ctx, key, dest)
	if err != nil {
		slog.Warn("failed to load snapshot", "key", key, "error", err)
		return false
	}
	return found
}
