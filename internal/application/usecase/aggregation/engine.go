// Package aggregation folds enriched transactions into scores, rollups and week profiles.
package aggregation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/domain/entity"
	"github.com/ecoimpact/backend/internal/domain/valueobject"
)

// TopCategoriesPerWeek is the number of rollups kept on each week profile.
const TopCategoriesPerWeek = 3

// avgPlaces is the rounding applied to avg_co2_per_dollar.
const avgPlaces = 4

// Result is the output of one aggregation pass.
type Result struct {
	Summary entity.ScoreSummary
	Rollups []entity.CategoryRollup
	Weeks   []entity.WeekProfile
}

// Engine is the aggregation engine. All methods are total: empty or degenerate
// inputs produce zero values, never errors.
type Engine struct {
	config     valueobject.ScoringConfig
	population []float64
}

// NewEngine creates an engine scoring against the given reference population
// of avg_co2_per_dollar values.
func NewEngine(config valueobject.ScoringConfig, population []float64) *Engine {
	sorted := append([]float64(nil), population...)
	sort.Float64s(sorted)
	return &Engine{
		config:     config,
		population: sorted,
	}
}

// Aggregate filters txs to period and computes the summary, category rollups and week profiles.
func (e *Engine) Aggregate(txs []*entity.EnrichedTransaction, period entity.Period) Result {
	inPeriod := FilterPeriod(txs, period)

	return Result{
		Summary: e.Summarize(inPeriod),
		Rollups: Rollups(inPeriod),
		Weeks:   WeekProfiles(inPeriod),
	}
}

// FilterPeriod keeps transactions dated within [period.Start, period.End).
// A zero bound is treated as open.
func FilterPeriod(txs []*entity.EnrichedTransaction, period entity.Period) []*entity.EnrichedTransaction {
	out := make([]*entity.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		if !period.Start.IsZero() && tx.Date.Before(period.Start) {
			continue
		}
		if !period.End.IsZero() && !tx.Date.Before(period.End) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Summarize computes the score summary of txs without period filtering.
// An empty set yields the all-zero summary, and so does the score of a set whose
// net spend is not positive. Totals and the count are kept in that case.
func (e *Engine) Summarize(txs []*entity.EnrichedTransaction) entity.ScoreSummary {
	if len(txs) == 0 {
		return entity.ScoreSummary{
			TotalCO2e:       decimal.Zero,
			AvgCO2PerDollar: decimal.Zero,
			TotalSpend:      decimal.Zero,
		}
	}

	totalCO2e := decimal.Zero
	totalSpend := decimal.Zero
	for _, tx := range txs {
		totalCO2e = totalCO2e.Add(tx.CO2e)
		totalSpend = totalSpend.Add(tx.Amount)
	}

	summary := entity.ScoreSummary{
		TotalCO2e:       totalCO2e,
		AvgCO2PerDollar: AvgCO2PerDollar(totalCO2e, totalSpend),
		TotalSpend:      totalSpend,
		TxCount:         len(txs),
	}
	// Without positive net spend there is no intensity to score: zero-dollar
	// rows and refund-only periods stay unscored like an empty period.
	if !totalSpend.IsPositive() {
		return summary
	}

	summary.Score = e.config.Score(summary.AvgCO2PerDollar)
	summary.Percentile = e.UserPercentile(summary.AvgCO2PerDollar.InexactFloat64())
	return summary
}

// UserPercentile ranks avg among the reference population, lowest intensity first.
// Values equal to the user's share its rank.
func (e *Engine) UserPercentile(avg float64) float64 {
	rank := sort.SearchFloat64s(e.population, avg)
	return Percentile(rank, len(e.population)+1)
}

// AvgCO2PerDollar returns co2 / spend, or zero when spend is not positive.
func AvgCO2PerDollar(co2, spend decimal.Decimal) decimal.Decimal {
	if !spend.IsPositive() {
		return decimal.Zero
	}
	return co2.Div(spend).Round(avgPlaces)
}

// Percentile maps a 0-based rank among n members onto 100 * (1 - rank/(n-1)).
// A single member is at 100.
func Percentile(rank, n int) float64 {
	if n <= 1 {
		return 100
	}
	p := 100 * (1 - float64(rank)/float64(n-1))
	return math.Round(p*100) / 100
}

// Rollups groups txs by category. The result is sorted by total_co2e descending,
// then category_id ascending, and carries competition-ranked percentiles.
func Rollups(txs []*entity.EnrichedTransaction) []entity.CategoryRollup {
	byID := make(map[string]*entity.CategoryRollup)
	for _, tx := range txs {
		r, ok := byID[tx.CategoryID]
		if !ok {
			r = &entity.CategoryRollup{
				CategoryID: tx.CategoryID,
				Name:       tx.CategoryName,
				EnvLabel:   tx.EnvLabel,
				TotalCO2e:  decimal.Zero,
				TotalSpend: decimal.Zero,
			}
			byID[tx.CategoryID] = r
		}
		r.TransactionCount++
		r.TotalCO2e = r.TotalCO2e.Add(tx.CO2e)
		r.TotalSpend = r.TotalSpend.Add(tx.Amount)
	}

	rollups := make([]entity.CategoryRollup, 0, len(byID))
	for _, r := range byID {
		rollups = append(rollups, *r)
	}

	sort.Slice(rollups, func(i, j int) bool {
		if c := rollups[i].TotalCO2e.Cmp(rollups[j].TotalCO2e); c != 0 {
			return c > 0
		}
		return rollups[i].CategoryID < rollups[j].CategoryID
	})

	rank := 0
	for i := range rollups {
		if i > 0 && !rollups[i].TotalCO2e.Equal(rollups[i-1].TotalCO2e) {
			rank = i
		}
		rollups[i].Percentile = Percentile(rank, len(rollups))
	}

	return rollups
}

// WeekProfiles buckets txs by ISO week, most recent week first.
func WeekProfiles(txs []*entity.EnrichedTransaction) []entity.WeekProfile {
	type weekKey struct{ year, week int }

	buckets := make(map[weekKey][]*entity.EnrichedTransaction)
	for _, tx := range txs {
		year, week := tx.Date.ISOWeek()
		key := weekKey{year, week}
		buckets[key] = append(buckets[key], tx)
	}

	profiles := make([]entity.WeekProfile, 0, len(buckets))
	for key, bucket := range buckets {
		spend := decimal.Zero
		co2 := decimal.Zero
		for _, tx := range bucket {
			spend = spend.Add(tx.Amount)
			co2 = co2.Add(tx.CO2e)
		}

		top := Rollups(bucket)
		if len(top) > TopCategoriesPerWeek {
			top = top[:TopCategoriesPerWeek]
		}

		profiles = append(profiles, entity.WeekProfile{
			Year:          key.year,
			Week:          key.week,
			WeekStart:     WeekStart(bucket[0].Date),
			TotalSpend:    spend,
			TotalCO2:      co2,
			TopCategories: top,
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].WeekStart.After(profiles[j].WeekStart)
	})

	return profiles
}

// TopTransactions returns up to limit transactions by co2e descending, then id ascending.
func TopTransactions(txs []*entity.EnrichedTransaction, limit int) []*entity.EnrichedTransaction {
	sorted := append([]*entity.EnrichedTransaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].CO2e.Cmp(sorted[j].CO2e); c != 0 {
			return c > 0
		}
		return sorted[i].ID < sorted[j].ID
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
