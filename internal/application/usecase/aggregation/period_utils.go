// Package aggregation folds enriched transactions into scores, rollups and week profiles.
package aggregation

import (
	"fmt"
	"time"

	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// MonthLayout is the query format for calendar months.
const MonthLayout = "2006-01"

// monthAbbreviations maps months to their short display names.
var monthAbbreviations = map[time.Month]string{
	time.January: "Jan", time.February: "Feb", time.March: "Mar",
	time.April: "Apr", time.May: "May", time.June: "Jun",
	time.July: "Jul", time.August: "Aug", time.September: "Sep",
	time.October: "Oct", time.November: "Nov", time.December: "Dec",
}

// MonthPeriod returns the calendar month containing date as [first day, first day of next month).
func MonthPeriod(date time.Time) entity.Period {
	date = date.UTC()
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return entity.Period{
		Start: start,
		End:   start.AddDate(0, 1, 0),
		Label: start.Format(MonthLayout),
	}
}

// RollingPeriod returns the last days calendar days up to and including now's date.
func RollingPeriod(now time.Time, days int) entity.Period {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return entity.Period{
		Start: end.AddDate(0, 0, -days),
		End:   end,
		Label: fmt.Sprintf("last-%d-days", days),
	}
}

// ResolvePeriod picks the period for a score request.
// month wins when set, days > 0 selects a rolling window, otherwise the current month.
func ResolvePeriod(now time.Time, month string, days int) (entity.Period, error) {
	if month != "" && days != 0 {
		return entity.Period{}, domainerror.NewScoringError(
			domainerror.ErrCodeConflictingPeriod,
			"use either month or days",
			domainerror.ErrConflictingPeriod,
		)
	}

	if month != "" {
		parsed, err := time.Parse(MonthLayout, month)
		if err != nil {
			return entity.Period{}, domainerror.NewScoringError(
				domainerror.ErrCodeInvalidMonth,
				fmt.Sprintf("invalid month %q", month),
				domainerror.ErrInvalidMonth,
			)
		}
		return MonthPeriod(parsed), nil
	}

	if days < 0 {
		return entity.Period{}, domainerror.NewScoringError(
			domainerror.ErrCodeInvalidDays,
			fmt.Sprintf("invalid days %d", days),
			domainerror.ErrInvalidDays,
		)
	}
	if days > 0 {
		return RollingPeriod(now, days), nil
	}

	return MonthPeriod(now), nil
}

// LastMonths returns the n calendar months ending with now's month, oldest first.
func LastMonths(now time.Time, n int) []entity.Period {
	current := MonthPeriod(now).Start
	periods := make([]entity.Period, 0, n)
	for i := n - 1; i >= 0; i-- {
		periods = append(periods, MonthPeriod(current.AddDate(0, -i, 0)))
	}
	return periods
}

// GenerateMonthLabel returns "{month_abbr} {year}", e.g. "Mar 2025".
func GenerateMonthLabel(date time.Time) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
}

// WeekStart returns the Monday 00:00 UTC of the ISO week containing date.
func WeekStart(date time.Time) time.Time {
	date = date.UTC()
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return time.Date(date.Year(), date.Month(), date.Day()-(weekday-1), 0, 0, 0, 0, time.UTC)
}

// ISOWeekLabel formats an ISO week as "2024-W01".
func ISOWeekLabel(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}
