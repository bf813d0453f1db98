package transaction

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/domain/valueobject"
)

const testTable = `
thresholds: {good_below: 0.1, bad_above: 1.0}
categories:
  - {id: transit, name: Public Transit, co2_per_dollar: 0.05}
  - {id: flights, name: Flights, co2_per_dollar: 0.5}
  - {id: fuel, name: Fuel, co2_per_dollar: 2.1}
  - {id: other, name: Other, co2_per_dollar: 0}
`

func newTestNormalizer(t *testing.T, policy valueobject.RefundPolicy) *Normalizer {
	t.Helper()
	table, err := valueobject.ParseEmissionTable([]byte(testTable))
	if err != nil {
		t.Fatalf("ParseEmissionTable() error = %v", err)
	}
	cfg := valueobject.DefaultScoringConfig()
	cfg.RefundPolicy = policy
	return NewNormalizer(table, cfg)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newTestNormalizer(t, valueobject.RefundPolicyFloor)

	tests := []struct {
		name         string
		raw          RawTransaction
		wantCategory string
		wantCO2e     string
		wantLabel    entity.EnvLabel
	}{
		{
			name:         "transit",
			raw:          RawTransaction{ID: "t1", Name: "Metro card", CategoryID: "transit", Amount: "100", Date: "2024-01-05"},
			wantCategory: "transit",
			wantCO2e:     "5",
			wantLabel:    entity.EnvLabelGood,
		},
		{
			name:         "flights",
			raw:          RawTransaction{ID: "t2", CategoryID: "flights", Amount: "50", Date: "2024-01-06"},
			wantCategory: "flights",
			wantCO2e:     "25",
			wantLabel:    entity.EnvLabelNeutral,
		},
		{
			name:         "rounds to three places",
			raw:          RawTransaction{CategoryID: "transit", Amount: "0.33", Date: "2024-01-06"},
			wantCategory: "transit",
			wantCO2e:     "0.017",
			wantLabel:    entity.EnvLabelGood,
		},
		{
			name:         "missing category defaults to other",
			raw:          RawTransaction{Amount: "12.50", Date: "2024-01-06"},
			wantCategory: entity.OtherCategoryID,
			wantCO2e:     "0",
			wantLabel:    entity.EnvLabelNeutral,
		},
		{
			name:         "unknown category defaults to other",
			raw:          RawTransaction{CategoryID: "spaceflight", Amount: "1000", Date: "2024-01-06"},
			wantCategory: entity.OtherCategoryID,
			wantCO2e:     "0",
			wantLabel:    entity.EnvLabelNeutral,
		},
		{
			name:         "currency sign and separators",
			raw:          RawTransaction{CategoryID: "Transit ", Amount: " $1,000.00 ", Date: "2024-01-06"},
			wantCategory: "transit",
			wantCO2e:     "50",
			wantLabel:    entity.EnvLabelGood,
		},
		{
			name:         "timestamp truncated to date",
			raw:          RawTransaction{CategoryID: "transit", Amount: "20", Date: "2024-01-06T23:10:00Z"},
			wantCategory: "transit",
			wantCO2e:     "1",
			wantLabel:    entity.EnvLabelGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize("u1", tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got.CategoryID != tt.wantCategory {
				t.Errorf("CategoryID = %q, want %q", got.CategoryID, tt.wantCategory)
			}
			if !got.CO2e.Equal(decimal.RequireFromString(tt.wantCO2e)) {
				t.Errorf("CO2e = %s, want %s", got.CO2e, tt.wantCO2e)
			}
			if got.EnvLabel != tt.wantLabel {
				t.Errorf("EnvLabel = %q, want %q", got.EnvLabel, tt.wantLabel)
			}
			if got.UserID != "u1" {
				t.Errorf("UserID = %q, want u1", got.UserID)
			}
			if got.Date.Hour() != 0 || got.Date.Location() != time.UTC {
				t.Errorf("Date = %v, want midnight UTC", got.Date)
			}
		})
	}
}

func TestNormalizer_Normalize_KeepsGivenID(t *testing.T) {
	n := newTestNormalizer(t, valueobject.RefundPolicyFloor)

	got, err := n.Normalize("u1", RawTransaction{ID: "bank-123", Amount: "1", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.ID != "bank-123" {
		t.Errorf("ID = %q, want bank-123", got.ID)
	}

	generated, err := n.Normalize("u1", RawTransaction{Amount: "1", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if generated.ID == "" {
		t.Error("ID is empty, want generated id")
	}
}

func TestNormalizer_Normalize_Rejects(t *testing.T) {
	n := newTestNormalizer(t, valueobject.RefundPolicyFloor)

	tests := []struct {
		name     string
		raw      RawTransaction
		wantErr  error
		wantCode domainerror.TransactionErrorCode
	}{
		{"missing amount", RawTransaction{Date: "2024-01-01"}, domainerror.ErrMissingTransactionFields, domainerror.ErrCodeMissingTransactionFields},
		{"missing date", RawTransaction{Amount: "10"}, domainerror.ErrMissingTransactionFields, domainerror.ErrCodeMissingTransactionFields},
		{"amount not a number", RawTransaction{Amount: "ten", Date: "2024-01-01"}, domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
		{"impossible date", RawTransaction{Amount: "10", Date: "2024-02-30"}, domainerror.ErrInvalidTransactionDate, domainerror.ErrCodeInvalidTransactionDate},
		{"garbage date", RawTransaction{Amount: "10", Date: "yesterday"}, domainerror.ErrInvalidTransactionDate, domainerror.ErrCodeInvalidTransactionDate},
		{"double minus", RawTransaction{Amount: "--5", Date: "2024-01-01"}, domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
		{"sign after currency", RawTransaction{Amount: "-$-5", Date: "2024-01-01"}, domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
		{"bad thousands grouping", RawTransaction{Amount: "1,2,3", Date: "2024-01-01"}, domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
		{"sub-cent precision", RawTransaction{Amount: "12.345", Date: "2024-01-01"}, domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
		{"bare decimal point", RawTransaction{Amount: "5.", Date: "2024-01-01"}, domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
		{"currency before sign", RawTransaction{Amount: "$-5", Date: "2024-01-01"}, domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize("u1", tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
			}
			if !domainerror.IsValidation(err) {
				t.Errorf("Normalize() error %v is not a validation error", err)
			}
			var txErr *domainerror.TransactionError
			if !errors.As(err, &txErr) || txErr.Code != tt.wantCode {
				t.Errorf("Normalize() code = %v, want %s", txErr, tt.wantCode)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{"0.5", "0.5"},
		{"+7.25", "7.25"},
		{"-120.00", "-120"},
		{"$19.99", "19.99"},
		{"-$1,234.50", "-1234.5"},
		{"1,000,000", "1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if err != nil {
				t.Fatalf("parseAmount(%q) error = %v", tt.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("parseAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizer_RefundPolicies(t *testing.T) {
	raw := RawTransaction{CategoryID: "flights", Amount: "-40", Date: "2024-01-01"}

	tests := []struct {
		policy   valueobject.RefundPolicy
		wantCO2e string
		wantErr  bool
	}{
		{valueobject.RefundPolicyFloor, "0", false},
		{valueobject.RefundPolicySubtract, "-20", false},
		{valueobject.RefundPolicyReject, "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			got, err := newTestNormalizer(t, tt.policy).Normalize("u1", raw)
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
					t.Fatalf("Normalize() error = %v, want ErrInvalidTransactionAmount", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !got.CO2e.Equal(decimal.RequireFromString(tt.wantCO2e)) {
				t.Errorf("CO2e = %s, want %s", got.CO2e, tt.wantCO2e)
			}
			if !got.Amount.Equal(decimal.NewFromInt(-40)) {
				t.Errorf("Amount = %s, want -40 (signed amount is kept)", got.Amount)
			}
		})
	}
}

func TestNormalizer_NormalizeBatch(t *testing.T) {
	n := newTestNormalizer(t, valueobject.RefundPolicyFloor)

	accepted, rejected := n.NormalizeBatch("u1", []RawTransaction{
		{ID: "ok1", Amount: "10", Date: "2024-01-01"},
		{ID: "bad", Amount: "x", Date: "2024-01-01"},
		{ID: "ok2", Amount: "5", Date: "2024-01-02"},
	})

	if len(accepted) != 2 {
		t.Fatalf("len(accepted) = %d, want 2", len(accepted))
	}
	if len(rejected) != 1 || rejected[0].Index != 1 || rejected[0].ID != "bad" {
		t.Errorf("rejected = %+v, want index 1 id bad", rejected)
	}
}
