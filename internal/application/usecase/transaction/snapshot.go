package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecoimpact/backend/internal/application/adapter"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// Source values tell clients whether a payload is fresh.
const (
	SourceLive  = "live"
	SourceCache = "cache"
)

func listSnapshotKey(userID, periodLabel string) string {
	return fmt.Sprintf("eco:transactions:%s:%s", userID, periodLabel)
}

func topSnapshotKey(userID, periodLabel string, limit int) string {
	return fmt.Sprintf("eco:top:%s:%s:%d", userID, periodLabel, limit)
}

func saveSnapshot(ctx context.Context, cache adapter.SnapshotCache, key string, value any) {
	if cache == nil {
		return
	}
	if err := cache.Save(ctx, key, value); err != nil {
		slog.Warn("failed to save snapshot", "key", key, "error", err)
	}
}

// loadFallback reads the last-known payload, but only when loadErr says the
// store is unavailable. Validation failures are never masked.
func loadFallback(ctx context.Context, cache adapter.SnapshotCache, key string, loadErr error, dest any) bool {
	if cache == nil || !domainerror.IsUpstreamUnavailable(loadErr) {
		return false
	}
	found, err := cache.Load(ctx, key, dest)
	if err != nil {
		slog.Warn("failed to load snapshot", "key", key, "error", err)
		return false
	}
	if found {
		slog.Warn("serving cached transactions", "key", key, "error", loadErr)
	}
	return found
}
