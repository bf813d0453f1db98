// Package scoring contains eco score use cases.
package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// MaxMonthlyScoreMonths caps the monthly history length.
const MaxMonthlyScoreMonths = 24

// GetMonthlyScoresInput represents the input for the monthly score history.
type GetMonthlyScoresInput struct {
	UserID string
	Months int // 0 selects the configured default
}

// GetMonthlyScoresOutput represents the monthly score history, oldest month first.
type GetMonthlyScoresOutput struct {
	UserID string
	Scores []entity.MonthlyScore
	Source string
}

// GetMonthlyScoresUseCase computes one score per calendar month.
type GetMonthlyScoresUseCase struct {
	loader        *transaction.Loader
	engine        *aggregation.Engine
	cache         adapter.SnapshotCache
	defaultMonths int
	now           func() time.Time
}

// NewGetMonthlyScoresUseCase creates a new GetMonthlyScoresUseCase instance. cache may be nil.
func NewGetMonthlyScoresUseCase(
	loader *transaction.Loader,
	engine *aggregation.Engine,
	cache adapter.SnapshotCache,
	defaultMonths int,
	now func() time.Time,
) *GetMonthlyScoresUseCase {
	return &GetMonthlyScoresUseCase{
		loader:        loader,
		engine:        engine,
		cache:         cache,
		defaultMonths: defaultMonths,
		now:           now,
	}
}

// Execute performs the monthly score computation.
func (uc *GetMonthlyScoresUseCase) Execute(ctx context.Context, input GetMonthlyScoresInput) (*GetMonthlyScoresOutput, error) {
	months := input.Months
	if months == 0 {
		months = uc.defaultMonths
	}
	if months < 1 || months > MaxMonthlyScoreMonths {
		return nil, domainerror.NewScoringError(
			domainerror.ErrCodeInvalidMonths,
			fmt.Sprintf("months must be between 1 and %d", MaxMonthlyScoreMonths),
			domainerror.ErrInvalidMonths,
		)
	}

	periods := aggregation.LastMonths(uc.now(), months)
	key := monthlySnapshotKey(input.UserID, months)

	txs, err := uc.loader.Load(ctx, input.UserID, periods[0].Start, periods[len(periods)-1].End)
	if err != nil {
		if domainerror.IsUpstreamUnavailable(err) {
			var cached GetMonthlyScoresOutput
			if loadSnapshot(ctx, uc.cache, key, &cached) {
				slog.Warn("serving cached monthly scores", "user_id", input.UserID, "error", err)
				cached.Source = SourceCache
				return &cached, nil
			}
		}
		return nil, err
	}

	output := &GetMonthlyScoresOutput{
		UserID: input.UserID,
		Scores: make([]entity.MonthlyScore, 0, len(periods)),
		Source: SourceLive,
	}

	for _, period := range periods {
		summary := uc.engine.Summarize(aggregation.FilterPeriod(txs, period))
		output.Scores = append(output.Scores, entity.MonthlyScore{
			Month:     period.Label,
			Label:     aggregation.GenerateMonthLabel(period.Start),
			Score:     summary.Score,
			TotalCO2e: summary.TotalCO2e,
			TxCount:   summary.TxCount,
		})
	}

	saveSnapshot(ctx, uc.cache, key, output)

	return output, nil
}
