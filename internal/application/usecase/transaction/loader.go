// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// Loader reads a user's transactions from the store and enriches them.
type Loader struct {
	transactionRepo adapter.TransactionRepository
	normalizer      *Normalizer
}

// NewLoader creates a new Loader instance.
func NewLoader(transactionRepo adapter.TransactionRepository, normalizer *Normalizer) *Loader {
	return &Loader{
		transactionRepo: transactionRepo,
		normalizer:      normalizer,
	}
}

// Load returns the user's enriched transactions dated in [start, end).
// Store failures are reported as upstream unavailable. Rows the refund policy
// rejects are skipped.
func (l *Loader) Load(ctx context.Context, userID string, start, end time.Time) ([]*entity.EnrichedTransaction, error) {
	txs, err := l.transactionRepo.ListByUser(ctx, userID, start, end)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionStoreUnavailable,
			"failed to load transactions",
			errors.Join(domainerror.ErrTransactionStoreUnavailable, err),
		)
	}

	enriched, rejected := l.normalizer.EnrichAll(txs)
	for _, r := range rejected {
		slog.Warn("skipping stored transaction",
			"user_id", userID,
			"transaction_id", r.ID,
			"error", r.Err,
		)
	}

	return enriched, nil
}

// UserIDs lists every user with stored transactions.
func (l *Loader) UserIDs(ctx context.Context) ([]string, error) {
	ids, err := l.transactionRepo.ListUserIDs(ctx)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionStoreUnavailable,
			"failed to list users",
			errors.Join(domainerror.ErrTransactionStoreUnavailable, err),
		)
	}
	return ids, nil
}
