// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a recorded purchase as delivered by the ingestion collaborator.
// Transactions are immutable once recorded.
type Transaction struct {
	ID         string
	UserID     string
	Name       string
	CategoryID string
	Amount     decimal.Decimal // Negative for refunds
	Date       time.Time       // Calendar date at 00:00 UTC
	CreatedAt  time.Time
}

// NewTransaction creates a new Transaction entity with a generated ID.
func NewTransaction(userID, name, categoryID string, amount decimal.Decimal, date time.Time) *Transaction {
	return &Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
		CreatedAt:  time.Now().UTC(),
	}
}

// EnrichedTransaction is a Transaction with its emission estimate attached.
// It is derived on every aggregation pass and never persisted.
type EnrichedTransaction struct {
	Transaction
	CategoryName string
	CO2e         decimal.Decimal
	EnvLabel     EnvLabel
}

// IsRefund reports whether the transaction carries a negative amount.
func (t *EnrichedTransaction) IsRefund() bool {
	return t.Amount.IsNegative()
}
