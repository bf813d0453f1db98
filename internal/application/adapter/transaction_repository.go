// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// TransactionRepository is the read side of the transaction store owned by the ingestion collaborator.
type TransactionRepository interface {
	// ListByUser returns the user's transactions with date in [start, end), ordered by date.
	// A zero start or end leaves that side unbounded.
	ListByUser(ctx context.Context, userID string, start, end time.Time) ([]*entity.Transaction, error)

	// ListUserIDs returns every user that has at least one transaction.
	ListUserIDs(ctx context.Context) ([]string, error)

	// CreateBatch stores already-normalized transactions. Used by seeding and imports only.
	CreateBatch(ctx context.Context, transactions []*entity.Transaction) error
}
