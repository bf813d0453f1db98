// Package valueobject contains domain value objects for the Eco Impact system.
package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RefundPolicy decides how negative amounts contribute to CO2e.
type RefundPolicy string

const (
	// RefundPolicyFloor keeps the signed amount for spend and counts zero CO2e.
	RefundPolicyFloor RefundPolicy = "floor"
	// RefundPolicySubtract lets a refund remove its share of CO2e.
	RefundPolicySubtract RefundPolicy = "subtract"
	// RefundPolicyReject rejects negative amounts as invalid records.
	RefundPolicyReject RefundPolicy = "reject"
)

// ParseRefundPolicy validates a configured policy name.
func ParseRefundPolicy(s string) (RefundPolicy, error) {
	switch p := RefundPolicy(s); p {
	case RefundPolicyFloor, RefundPolicySubtract, RefundPolicyReject:
		return p, nil
	case "":
		return RefundPolicyFloor, nil
	default:
		return "", fmt.Errorf("unknown refund policy %q", s)
	}
}

// ScoringConfig contains the numeric policy for the aggregation engine.
type ScoringConfig struct {
	// K is the slope of score = clamp(100 - K * avg_co2_per_dollar, 0, 100).
	K            decimal.Decimal
	RefundPolicy RefundPolicy
	// CO2ePlaces is the rounding applied to per-transaction CO2e.
	CO2ePlaces int32
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		K:            decimal.NewFromInt(50),
		RefundPolicy: RefundPolicyFloor,
		CO2ePlaces:   3,
	}
}

// Score maps an average carbon intensity onto the 0-100 eco score.
// Higher intensity never yields a higher score.
func (c ScoringConfig) Score(avgCO2PerDollar decimal.Decimal) float64 {
	hundred := decimal.NewFromInt(100)
	score := hundred.Sub(c.K.Mul(avgCO2PerDollar))
	if score.LessThan(decimal.Zero) {
		score = decimal.Zero
	}
	if score.GreaterThan(hundred) {
		score = hundred
	}
	return score.Round(2).InexactFloat64()
}
