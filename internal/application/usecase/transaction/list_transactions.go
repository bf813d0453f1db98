// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID string
	Month  string // YYYY-MM, optional
	Days   int    // rolling window, optional
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Period       entity.Period
	Transactions []*entity.EnrichedTransaction
	Source       string
}

// ListTransactionsUseCase handles listing enriched transactions for a period.
type ListTransactionsUseCase struct {
	loader *Loader
	cache  adapter.SnapshotCache
	now    func() time.Time
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance. cache may be nil.
func NewListTransactionsUseCase(loader *Loader, cache adapter.SnapshotCache, now func() time.Time) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		loader: loader,
		cache:  cache,
		now:    now,
	}
}

// Execute performs the transaction listing, newest first. When the store is
// unavailable the last listing of the same period is served.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	period, err := aggregation.ResolvePeriod(uc.now(), input.Month, input.Days)
	if err != nil {
		return nil, err
	}

	key := listSnapshotKey(input.UserID, period.Label)

	txs, err := uc.loader.Load(ctx, input.UserID, period.Start, period.End)
	if err != nil {
		var cached ListTransactionsOutput
		if loadFallback(ctx, uc.cache, key, err, &cached) {
			cached.Source = SourceCache
			return &cached, nil
		}
		return nil, err
	}
	txs = aggregation.FilterPeriod(txs, period)

	// Reverse the store's date order.
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}

	output := &ListTransactionsOutput{
		Period:       period,
		Transactions: txs,
		Source:       SourceLive,
	}
	saveSnapshot(ctx, uc.cache, key, output)

	return output, nil
}
