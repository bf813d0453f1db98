// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a half-open time range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
	// Label is a display name such as "2024-01" or "last-30-days".
	Label string
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// CategoryRollup aggregates a user's transactions for one category over a period.
type CategoryRollup struct {
	CategoryID       string
	Name             string
	EnvLabel         EnvLabel
	TransactionCount int
	TotalCO2e        decimal.Decimal
	TotalSpend       decimal.Decimal
	Percentile       float64
}

// ScoreSummary is the per-user, per-period eco score.
type ScoreSummary struct {
	Score           float64
	Percentile      float64
	TotalCO2e       decimal.Decimal
	AvgCO2PerDollar decimal.Decimal
	TotalSpend      decimal.Decimal
	TxCount         int
}

// WeekProfile is the aggregate of one ISO week of a user's transactions.
type WeekProfile struct {
	Year          int
	Week          int
	WeekStart     time.Time // Monday 00:00 UTC
	TotalSpend    decimal.Decimal
	TotalCO2      decimal.Decimal
	TopCategories []CategoryRollup
}

// MonthlyScore is one point of the monthly score history.
type MonthlyScore struct {
	Month     string // YYYY-MM
	Label     string // "Jan 2024"
	Score     float64
	TotalCO2e decimal.Decimal
	TxCount   int
}
