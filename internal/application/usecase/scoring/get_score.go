// Package scoring contains eco score use cases.
package scoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// GetScoreInput represents the input for the score view.
type GetScoreInput struct {
	UserID string
	Month  string
	Days   int
}

// GetScoreOutput represents the output of the score view.
type GetScoreOutput struct {
	UserID  string
	Period  entity.Period
	Summary entity.ScoreSummary
	Rollups []entity.CategoryRollup
	Weeks   []entity.WeekProfile
	Source  string
}

// GetScoreUseCase computes a user's eco score for a period.
type GetScoreUseCase struct {
	loader *transaction.Loader
	engine *aggregation.Engine
	cache  adapter.SnapshotCache
	now    func() time.Time
}

// NewGetScoreUseCase creates a new GetScoreUseCase instance. cache may be nil.
func NewGetScoreUseCase(loader *transaction.Loader, engine *aggregation.Engine, cache adapter.SnapshotCache, now func() time.Time) *GetScoreUseCase {
	return &GetScoreUseCase{
		loader: loader,
		engine: engine,
		cache:  cache,
		now:    now,
	}
}

// Execute computes the score. When the transaction store is unavailable the
// last successfully computed score for the same period is served instead.
func (uc *GetScoreUseCase) Execute(ctx context.Context, input GetScoreInput) (*GetScoreOutput, error) {
	period, err := aggregation.ResolvePeriod(uc.now(), input.Month, input.Days)
	if err != nil {
		return nil, err
	}

	key := scoreSnapshotKey(input.UserID, period.Label)

	txs, err := uc.loader.Load(ctx, input.UserID, period.Start, period.End)
	if err != nil {
		if domainerror.IsUpstreamUnavailable(err) {
			var cached GetScoreOutput
			if loadSnapshot(ctx, uc.cache, key, &cached) {
				slog.Warn("serving cached score", "user_id", input.UserID, "period", period.Label, "error", err)
				cached.Source = SourceCache
				return &cached, nil
			}
		}
		return nil, err
	}

	result := uc.engine.Aggregate(txs, period)
	output := &GetScoreOutput{
		UserID:  input.UserID,
		Period:  period,
		Summary: result.Summary,
		Rollups: result.Rollups,
		Weeks:   result.Weeks,
		Source:  SourceLive,
	}

	saveSnapshot(ctx, uc.cache, key, output)

	return output, nil
}
