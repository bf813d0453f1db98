// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

const (
	// DefaultTopLimit is the number of top-impact transactions returned by default.
	DefaultTopLimit = 5
	// MaxTopLimit caps the number of top-impact transactions.
	MaxTopLimit = 50
)

// GetTopTransactionsInput represents the input for the top-impact view.
type GetTopTransactionsInput struct {
	UserID string
	Month  string
	Days   int
	Limit  int // 0 selects DefaultTopLimit
}

// GetTopTransactionsOutput represents the output of the top-impact view.
type GetTopTransactionsOutput struct {
	Period       entity.Period
	Transactions []*entity.EnrichedTransaction
	Rollups      []entity.CategoryRollup
	Source       string
}

// GetTopTransactionsUseCase ranks a period's transactions by CO2e.
type GetTopTransactionsUseCase struct {
	loader *Loader
	cache  adapter.SnapshotCache
	now    func() time.Time
}

// NewGetTopTransactionsUseCase creates a new GetTopTransactionsUseCase instance. cache may be nil.
func NewGetTopTransactionsUseCase(loader *Loader, cache adapter.SnapshotCache, now func() time.Time) *GetTopTransactionsUseCase {
	return &GetTopTransactionsUseCase{
		loader: loader,
		cache:  cache,
		now:    now,
	}
}

// Execute returns the top transactions by CO2e and the category rollups of the period.
// When the store is unavailable the last view computed for the same period and limit is served.
func (uc *GetTopTransactionsUseCase) Execute(ctx context.Context, input GetTopTransactionsInput) (*GetTopTransactionsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = DefaultTopLimit
	}
	if limit < 0 || limit > MaxTopLimit {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidLimit,
			fmt.Sprintf("limit must be between 1 and %d", MaxTopLimit),
			domainerror.ErrInvalidTransactionLimit,
		)
	}

	period, err := aggregation.ResolvePeriod(uc.now(), input.Month, input.Days)
	if err != nil {
		return nil, err
	}

	key := topSnapshotKey(input.UserID, period.Label, limit)

	txs, err := uc.loader.Load(ctx, input.UserID, period.Start, period.End)
	if err != nil {
		var cached GetTopTransactionsOutput
		if loadFallback(ctx, uc.cache, key, err, &cached) {
			cached.Source = SourceCache
			return &cached, nil
		}
		return nil, err
	}
	txs = aggregation.FilterPeriod(txs, period)

	output := &GetTopTransactionsOutput{
		Period:       period,
		Transactions: aggregation.TopTransactions(txs, limit),
		Rollups:      aggregation.Rollups(txs),
		Source:       SourceLive,
	}
	saveSnapshot(ctx, uc.cache, key, output)

	return output, nil
}
