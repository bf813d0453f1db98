package leaderboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// refreshConcurrency bounds the number of users aggregated at once.
const refreshConcurrency = 4

// RefreshLeaderboardInput represents the input for a refresh run.
type RefreshLeaderboardInput struct {
	Month string // YYYY-MM, empty for the current month
}

// RefreshLeaderboardOutput summarizes a refresh run.
type RefreshLeaderboardOutput struct {
	Period    entity.Period
	Refreshed int
	// Skipped lists users without transactions in the period.
	Skipped []string
}

// RefreshLeaderboardUseCase recomputes every user's leaderboard row for a month.
type RefreshLeaderboardUseCase struct {
	loader   *transaction.Loader
	engine   *aggregation.Engine
	writer   adapter.LeaderboardWriter
	userRepo adapter.UserRepository
	now      func() time.Time
}

// NewRefreshLeaderboardUseCase creates a new RefreshLeaderboardUseCase instance.
// userRepo may be nil, in which case user ids double as display names.
func NewRefreshLeaderboardUseCase(
	loader *transaction.Loader,
	engine *aggregation.Engine,
	writer adapter.LeaderboardWriter,
	userRepo adapter.UserRepository,
	now func() time.Time,
) *RefreshLeaderboardUseCase {
	return &RefreshLeaderboardUseCase{
		loader:   loader,
		engine:   engine,
		writer:   writer,
		userRepo: userRepo,
		now:      now,
	}
}

// Execute aggregates each user's month and stores the resulting rows as the board.
func (uc *RefreshLeaderboardUseCase) Execute(ctx context.Context, input RefreshLeaderboardInput) (*RefreshLeaderboardOutput, error) {
	now := uc.now().UTC()
	period, err := aggregation.ResolvePeriod(now, input.Month, 0)
	if err != nil {
		return nil, err
	}

	userIDs, err := uc.loader.UserIDs(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*entity.LeaderboardEntry, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for i, userID := range userIDs {
		g.Go(func() error {
			txs, err := uc.loader.Load(gctx, userID, period.Start, period.End)
			if err != nil {
				return err
			}
			summary := uc.engine.Summarize(aggregation.FilterPeriod(txs, period))
			if summary.TxCount == 0 {
				return nil
			}
			rows[i] = BuildEntry(userID, uc.displayName(gctx, userID), summary, now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &RefreshLeaderboardOutput{Period: period}
	entries := make([]*entity.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			output.Skipped = append(output.Skipped, userIDs[i])
			continue
		}
		entries = append(entries, row)
	}

	// The refreshed month replaces the whole board, even when nobody was active.
	if err := uc.writer.ReplaceEntries(ctx, entries); err != nil {
		return nil, domainerror.NewLeaderboardError(
			domainerror.ErrCodeLeaderboardSourceUnavailable,
			"failed to store leaderboard entries",
			errors.Join(domainerror.ErrLeaderboardSourceUnavailable, err),
		)
	}
	output.Refreshed = len(entries)

	slog.Info("leaderboard refreshed",
		"period", period.Label,
		"refreshed", output.Refreshed,
		"skipped", len(output.Skipped),
	)

	return output, nil
}

func (uc *RefreshLeaderboardUseCase) displayName(ctx context.Context, userID string) string {
	if uc.userRepo == nil {
		return userID
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil || user.DisplayName == "" {
		return userID
	}
	return user.DisplayName
}
