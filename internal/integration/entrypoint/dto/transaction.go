package dto

import (
	"time"

	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// PeriodResponse describes the aggregation window. End is exclusive.
type PeriodResponse struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TransactionResponse represents an enriched transaction in API responses.
type TransactionResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	CO2e         float64 `json:"co2e"`
	EnvLabel     string  `json:"env_label"`
}

// CategoryRollupResponse represents per-category totals for a period.
type CategoryRollupResponse struct {
	CategoryID       string  `json:"category_id"`
	Name             string  `json:"name"`
	EnvLabel         string  `json:"env_label"`
	TransactionCount int     `json:"transaction_count"`
	TotalCO2e        float64 `json:"total_co2e"`
	TotalSpend       float64 `json:"total_spend"`
	Percentile       float64 `json:"percentile"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Period       PeriodResponse        `json:"period"`
	Transactions []TransactionResponse `json:"transactions"`
	Source       string                `json:"source"`
}

// TopTransactionsResponse represents the top-impact view.
type TopTransactionsResponse struct {
	Period          PeriodResponse           `json:"period"`
	Transactions    []TransactionResponse    `json:"transactions"`
	CategoryRollups []CategoryRollupResponse `json:"category_rollups"`
	Source          string                   `json:"source"`
}

// ToPeriodResponse converts a Period.
func ToPeriodResponse(p entity.Period) PeriodResponse {
	return PeriodResponse{
		Label: p.Label,
		Start: p.Start.Format(time.DateOnly),
		End:   p.End.Format(time.DateOnly),
	}
}

// ToTransactionResponse converts an EnrichedTransaction to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.EnrichedTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		Name:         tx.Name,
		CategoryID:   tx.CategoryID,
		CategoryName: tx.CategoryName,
		Amount:       tx.Amount.InexactFloat64(),
		Date:         tx.Date.Format(time.DateOnly),
		CO2e:         tx.CO2e.InexactFloat64(),
		EnvLabel:     string(tx.EnvLabel),
	}
}

// ToTransactionResponses converts a list, never returning nil.
func ToTransactionResponses(txs []*entity.EnrichedTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionResponse(tx))
	}
	return out
}

// ToCategoryRollupResponses converts rollups, never returning nil.
func ToCategoryRollupResponses(rollups []entity.CategoryRollup) []CategoryRollupResponse {
	out := make([]CategoryRollupResponse, 0, len(rollups))
	for _, r := range rollups {
		out = append(out, CategoryRollupResponse{
			CategoryID:       r.CategoryID,
			Name:             r.Name,
			EnvLabel:         string(r.EnvLabel),
			TransactionCount: r.TransactionCount,
			TotalCO2e:        r.TotalCO2e.InexactFloat64(),
			TotalSpend:       r.TotalSpend.InexactFloat64(),
			Percentile:       r.Percentile,
		})
	}
	return out
}

// ToTransactionListResponse converts the list use case output.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	return TransactionListResponse{
		Period:       ToPeriodResponse(output.Period),
		Transactions: ToTransactionResponses(output.Transactions),
		Source:       output.Source,
	}
}

// ToTopTransactionsResponse converts the top-impact use case output.
func ToTopTransactionsResponse(output *transaction.GetTopTransactionsOutput) TopTransactionsResponse {
	return TopTransactionsResponse{
		Period:          ToPeriodResponse(output.Period),
		Transactions:    ToTransactionResponses(output.Transactions),
		CategoryRollups: ToCategoryRollupResponses(output.Rollups),
		Source:          output.Source,
	}
}
