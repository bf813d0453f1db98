package aggregation

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		month     string
		days      int
		wantStart time.Time
		wantEnd   time.Time
		wantErr   error
	}{
		{
			name:      "default current month",
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "explicit month",
			month:     "2023-12",
			wantStart: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "rolling window includes today",
			days:      7,
			wantStart: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{name: "bad month", month: "2024-13", wantErr: domainerror.ErrInvalidMonth},
		{name: "negative days", days: -1, wantErr: domainerror.ErrInvalidDays},
		{name: "both", month: "2024-01", days: 3, wantErr: domainerror.ErrConflictingPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriod(now, tt.month, tt.days)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolvePeriod() error = %v, want %v", err, tt.wantErr)
				}
				if !domainerror.IsValidation(err) {
					t.Errorf("ResolvePeriod() error %v is not a validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePeriod() error = %v", err)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("ResolvePeriod() = [%v, %v), want [%v, %v)", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestLastMonths(t *testing.T) {
	got := LastMonths(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 3)
	want := []string{"2023-12", "2024-01", "2024-02"}
	if len(got) != len(want) {
		t.Fatalf("len(LastMonths) = %d, want %d", len(got), len(want))
	}
	for i, label := range want {
		if got[i].Label != label {
			t.Errorf("LastMonths()[%d] = %s, want %s", i, got[i].Label, label)
		}
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-01-01"},
		{"2024-01-07", "2024-01-01"},
		{"2024-01-08", "2024-01-08"},
		{"2021-01-03", "2020-12-28"},
	}

	for _, tt := range tests {
		d, _ := time.Parse("2006-01-02", tt.date)
		if got := WeekStart(d).Format("2006-01-02"); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestGenerateMonthLabel(t *testing.T) {
	if got := GenerateMonthLabel(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)); got != "Mar 2025" {
		t.Errorf("GenerateMonthLabel() = %q, want %q", got, "Mar 2025")
	}
}
