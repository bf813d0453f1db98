// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	"github.com/ecoimpact/backend/internal/integration/persistence/model"
)

// transactionBatchSize is the number of rows inserted per statement.
const transactionBatchSize = 100

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// ListByUser retrieves a user's transactions in [start, end), oldest first.
func (r *transactionRepository) ListByUser(ctx context.Context, userID string, start, end time.Time) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !start.IsZero() {
		query = query.Where("date >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("date < ?", end)
	}

	var transactionModels []model.TransactionModel
	result := query.Order("date ASC, id ASC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// ListUserIDs returns the distinct owners of stored transactions.
func (r *transactionRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Distinct("user_id").
		Order("user_id").
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// CreateBatch inserts transactions, skipping ids that already exist.
func (r *transactionRepository) CreateBatch(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	models := make([]*model.TransactionModel, len(transactions))
	for i, tx := range transactions {
		models[i] = model.TransactionFromEntity(tx)
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, transactionBatchSize)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
