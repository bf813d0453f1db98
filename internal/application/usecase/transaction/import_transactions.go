// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// ImportTransactionsInput represents a batch of raw records for one user.
type ImportTransactionsInput struct {
	UserID       string
	Transactions []RawTransaction
}

// ImportTransactionsOutput reports what was stored and what was rejected.
type ImportTransactionsOutput struct {
	Imported []*entity.EnrichedTransaction
	Rejected []Rejection
}

// ImportTransactionsUseCase normalizes raw records and stores the accepted ones.
// It backs the seeding CLI; the API itself never writes transactions.
type ImportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	normalizer      *Normalizer
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(transactionRepo adapter.TransactionRepository, normalizer *Normalizer) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		transactionRepo: transactionRepo,
		normalizer:      normalizer,
	}
}

// Execute performs the import.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	accepted, rejected := uc.normalizer.NormalizeBatch(input.UserID, input.Transactions)

	for _, r := range rejected {
		slog.Warn("rejected transaction record",
			"user_id", input.UserID,
			"index", r.Index,
			"transaction_id", r.ID,
			"error", r.Err,
		)
	}

	if len(accepted) > 0 {
		stored := make([]*entity.Transaction, 0, len(accepted))
		for _, tx := range accepted {
			t := tx.Transaction
			stored = append(stored, &t)
		}
		if err := uc.transactionRepo.CreateBatch(ctx, stored); err != nil {
			return nil, fmt.Errorf("failed to store transactions: %w", err)
		}
	}

	return &ImportTransactionsOutput{
		Imported: accepted,
		Rejected: rejected,
	}, nil
}
