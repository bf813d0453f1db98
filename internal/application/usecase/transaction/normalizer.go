// Package transaction contains transaction-related use cases.
package transaction

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/domain/valueobject"
)

// DateLayout is the calendar date format accepted for raw transactions.
const DateLayout = "2006-01-02"

// RawTransaction is a transaction record as delivered by the ingestion collaborator,
// before any coercion.
type RawTransaction struct {
	ID         string
	Name       string
	CategoryID string
	Amount     string
	Date       string
}

// Rejection describes a raw record that failed normalization.
type Rejection struct {
	Index int
	ID    string
	Err   error
}

// Normalizer validates raw records and attaches CO2e from the emission table.
// It has no side effects.
type Normalizer struct {
	table  *valueobject.EmissionTable
	config valueobject.ScoringConfig
}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer(table *valueobject.EmissionTable, config valueobject.ScoringConfig) *Normalizer {
	return &Normalizer{
		table:  table,
		config: config,
	}
}

// Normalize coerces a raw record into an enriched transaction owned by userID.
// Failures are returned as *domainerror.TransactionError.
func (n *Normalizer) Normalize(userID string, raw RawTransaction) (*entity.EnrichedTransaction, error) {
	amountStr := strings.TrimSpace(raw.Amount)
	dateStr := strings.TrimSpace(raw.Date)
	if amountStr == "" || dateStr == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"amount and date are required",
			domainerror.ErrMissingTransactionFields,
		)
	}

	amount, err := parseAmount(amountStr)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			fmt.Sprintf("amount %q is not a number", raw.Amount),
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			fmt.Sprintf("date %q is not a valid calendar date", raw.Date),
			domainerror.ErrInvalidTransactionDate,
		)
	}

	tx := entity.NewTransaction(userID, strings.TrimSpace(raw.Name), normalizeCategoryID(raw.CategoryID), amount, date)
	if id := strings.TrimSpace(raw.ID); id != "" {
		tx.ID = id
	}

	return n.Enrich(tx)
}

// NormalizeBatch normalizes every record, collecting rejections instead of failing.
func (n *Normalizer) NormalizeBatch(userID string, raws []RawTransaction) ([]*entity.EnrichedTransaction, []Rejection) {
	accepted := make([]*entity.EnrichedTransaction, 0, len(raws))
	var rejected []Rejection

	for i, raw := range raws {
		tx, err := n.Normalize(userID, raw)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, ID: raw.ID, Err: err})
			continue
		}
		accepted = append(accepted, tx)
	}

	return accepted, rejected
}

// Enrich attaches category details and CO2e to a stored transaction.
// Under the reject refund policy a negative amount is a validation failure.
func (n *Normalizer) Enrich(tx *entity.Transaction) (*entity.EnrichedTransaction, error) {
	if tx.Amount.IsNegative() && n.config.RefundPolicy == valueobject.RefundPolicyReject {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	info, known := n.table.Lookup(tx.CategoryID)
	if !known {
		// Stored rows keep their category id only when it resolves.
		copied := *tx
		copied.CategoryID = info.CategoryID
		tx = &copied
	}

	return &entity.EnrichedTransaction{
		Transaction:  *tx,
		CategoryName: info.Name,
		CO2e:         n.co2e(tx.Amount, info.CO2PerDollar),
		EnvLabel:     info.EnvLabel,
	}, nil
}

// EnrichAll enriches stored transactions, skipping the ones the refund policy rejects.
func (n *Normalizer) EnrichAll(txs []*entity.Transaction) ([]*entity.EnrichedTransaction, []Rejection) {
	out := make([]*entity.EnrichedTransaction, 0, len(txs))
	var rejected []Rejection

	for i, tx := range txs {
		enriched, err := n.Enrich(tx)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, ID: tx.ID, Err: err})
			continue
		}
		out = append(out, enriched)
	}

	return out, rejected
}

// co2e computes round(amount * coefficient, places) under the refund policy.
func (n *Normalizer) co2e(amount decimal.Decimal, co2PerDollar float64) decimal.Decimal {
	if amount.IsNegative() && n.config.RefundPolicy != valueobject.RefundPolicySubtract {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromFloat(co2PerDollar)).Round(n.config.CO2ePlaces)
}

// amountPattern is one optional sign, an optional dollar sign, then either plain
// digits or comma-grouped thousands, with at most two fractional digits.
var amountPattern = regexp.MustCompile(`^([+-]?)\$?(\d{1,3}(?:,\d{3})+|\d+)(\.\d{1,2})?$`)

// parseAmount accepts a signed amount in minor-unit precision, such as
// "-$1,234.50". Anything else is rejected rather than repaired.
func parseAmount(s string) (decimal.Decimal, error) {
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, errors.New("malformed amount")
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", "") + m[3])
	if err != nil {
		return decimal.Zero, err
	}
	if m[1] == "-" {
		amount = amount.Neg()
	}
	return amount, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp truncated to its date.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

func normalizeCategoryID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return entity.OtherCategoryID
	}
	return id
}
