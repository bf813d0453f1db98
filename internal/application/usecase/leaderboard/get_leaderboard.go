package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// MaxLeaderboardSize caps the requested board size.
const MaxLeaderboardSize = 100

// Source values for the leaderboard payload.
const (
	SourceLive  = "live"
	SourceCache = "cache"
	SourceDemo  = "demo"
)

// Config holds the leaderboard presentation policy.
type Config struct {
	DefaultSize int
	Demotion    DemotionPolicy
}

// RankedEntry is a leaderboard row with its 1-based position.
type RankedEntry struct {
	Rank  int
	Entry *entity.LeaderboardEntry
}

// GetLeaderboardInput represents the input for the leaderboard view.
type GetLeaderboardInput struct {
	UserID string
	Limit  int // 0 selects the default size
}

// GetLeaderboardOutput represents the ranked board.
type GetLeaderboardOutput struct {
	Entries []RankedEntry
	// UserRank is the caller's position, or 0 when they are not on the board.
	UserRank    int
	Source      string
	GeneratedAt time.Time
}

// GetLeaderboardUseCase handles the leaderboard view.
type GetLeaderboardUseCase struct {
	leaderboardRepo adapter.LeaderboardRepository
	cache           adapter.SnapshotCache
	config          Config
	now             func() time.Time
}

// NewGetLeaderboardUseCase creates a new GetLeaderboardUseCase instance. cache may be nil.
func NewGetLeaderboardUseCase(
	leaderboardRepo adapter.LeaderboardRepository,
	cache adapter.SnapshotCache,
	config Config,
	now func() time.Time,
) *GetLeaderboardUseCase {
	return &GetLeaderboardUseCase{
		leaderboardRepo: leaderboardRepo,
		cache:           cache,
		config:          config,
		now:             now,
	}
}

// Execute ranks the live candidates against the demo board. When the candidate
// source fails it serves the last board of the same size, then the demo board alone.
func (uc *GetLeaderboardUseCase) Execute(ctx context.Context, input GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	size, err := uc.resolveSize(input.Limit)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("eco:leaderboard:%d", size)

	live, err := uc.leaderboardRepo.ListCandidates(ctx)
	if err != nil {
		slog.Warn("leaderboard candidates unavailable", "error", err)

		var cached GetLeaderboardOutput
		if uc.loadSnapshot(ctx, key, &cached) {
			cached.Source = SourceCache
			cached.UserRank = userRank(cached.Entries, input.UserID)
			return &cached, nil
		}

		return uc.output(Rank(nil, DemoEntries(), size, uc.config.Demotion), input.UserID, SourceDemo), nil
	}

	output := uc.output(Rank(live, DemoEntries(), size, uc.config.Demotion), input.UserID, SourceLive)
	uc.saveSnapshot(ctx, key, output)

	return output, nil
}

func (uc *GetLeaderboardUseCase) resolveSize(limit int) (int, error) {
	if limit < 0 {
		return 0, domainerror.NewLeaderboardError(
			domainerror.ErrCodeInvalidLeaderboardLimit,
			fmt.Sprintf("invalid limit %d", limit),
			domainerror.ErrInvalidLeaderboardLimit,
		)
	}
	if limit == 0 {
		limit = uc.config.DefaultSize
	}
	return min(limit, MaxLeaderboardSize), nil
}

func (uc *GetLeaderboardUseCase) output(board []*entity.LeaderboardEntry, userID, source string) *GetLeaderboardOutput {
	entries := make([]RankedEntry, len(board))
	for i, e := range board {
		entries[i] = RankedEntry{Rank: i + 1, Entry: e}
	}
	return &GetLeaderboardOutput{
		Entries:     entries,
		UserRank:    userRank(entries, userID),
		Source:      source,
		GeneratedAt: uc.now().UTC(),
	}
}

func userRank(entries []RankedEntry, userID string) int {
	if userID == "" {
		return 0
	}
	for _, e := range entries {
		if e.Entry != nil && e.Entry.UserID == userID {
			return e.Rank
		}
	}
	return 0
}

func (uc *GetLeaderboardUseCase) saveSnapshot(ctx context.Context, key string, value any) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Save(ctx, key, value); err != nil {
		slog.Warn("failed to save leaderboard snapshot", "key", key, "error", err)
	}
}

func (uc *GetLeaderboardUseCase) loadSnapshot(ctx context.Context, key string, dest any) bool {
	if uc.cache == nil {
		return false
	}
	found, err := uc.cache.Load(ctx, key, dest)
	if err != nil {
		slog.Warn("failed to load leaderboard snapshot", "key", key, "error", err)
		return false
	}
	return found
}
