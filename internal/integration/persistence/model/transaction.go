// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID         string          `gorm:"type:varchar(64);primaryKey"`
	UserID     string          `gorm:"type:varchar(64);not null;index:idx_transactions_user_date,priority:1"`
	Date       time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2"`
	Name       string          `gorm:"type:varchar(255);not null"`
	CategoryID string          `gorm:"type:varchar(64);not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		CategoryID: m.CategoryID,
		Amount:     m.Amount,
		Date:       m.Date.UTC(),
		CreatedAt:  m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &TransactionModel{
		ID:         tx.ID,
		UserID:     tx.UserID,
		Date:       tx.Date,
		Name:       tx.Name,
		CategoryID: tx.CategoryID,
		Amount:     tx.Amount,
		CreatedAt:  createdAt,
	}
}
