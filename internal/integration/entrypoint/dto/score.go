package dto

import (
	"time"

	"github.com/ecoimpact/backend/internal/application/usecase/scoring"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// ScoreSummaryResponse mirrors ScoreSummary.
type ScoreSummaryResponse struct {
	Score           float64 `json:"score"`
	Percentile      float64 `json:"percentile"`
	TotalCO2e       float64 `json:"total_co2e"`
	AvgCO2PerDollar float64 `json:"avg_co2_per_dollar"`
	TotalSpend      float64 `json:"total_spend"`
	TxCount         int     `json:"tx_count"`
}

// WeekProfileResponse mirrors WeekProfile.
type WeekProfileResponse struct {
	Year          int                      `json:"year"`
	Week          int                      `json:"week"`
	WeekStart     string                   `json:"week_start"`
	TotalSpend    float64                  `json:"total_spend"`
	TotalCO2      float64                  `json:"total_co2"`
	TopCategories []CategoryRollupResponse `json:"top_categories"`
}

// ScoreResponse is the /score payload. Summary fields sit at the top level.
type ScoreResponse struct {
	UserID string         `json:"user_id"`
	Period PeriodResponse `json:"period"`
	ScoreSummaryResponse
	CategoryRollups []CategoryRollupResponse `json:"category_rollups"`
	WeekProfiles    []WeekProfileResponse    `json:"week_profiles"`
	Source          string                   `json:"source"`
}

// MonthlyScoreResponse is one point of the monthly score chart.
type MonthlyScoreResponse struct {
	Month     string  `json:"month"`
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
	TotalCO2e float64 `json:"total_co2e"`
	TxCount   int     `json:"tx_count"`
}

// MonthlyScoresResponse is the /monthly-scores payload, oldest month first.
type MonthlyScoresResponse struct {
	UserID string                 `json:"user_id"`
	Scores []MonthlyScoreResponse `json:"scores"`
	Source string                 `json:"source"`
}

// ToScoreSummaryResponse converts a ScoreSummary.
func ToScoreSummaryResponse(s entity.ScoreSummary) ScoreSummaryResponse {
	return ScoreSummaryResponse{
		Score:           s.Score,
		Percentile:      s.Percentile,
		TotalCO2e:       s.TotalCO2e.InexactFloat64(),
		AvgCO2PerDollar: s.AvgCO2PerDollar.InexactFloat64(),
		TotalSpend:      s.TotalSpend.InexactFloat64(),
		TxCount:         s.TxCount,
	}
}

// ToWeekProfileResponses converts week profiles, never returning nil.
func ToWeekProfileResponses(weeks []entity.WeekProfile) []WeekProfileResponse {
	out := make([]WeekProfileResponse, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, WeekProfileResponse{
			Year:          w.Year,
			Week:          w.Week,
			WeekStart:     w.WeekStart.Format(time.DateOnly),
			TotalSpend:    w.TotalSpend.InexactFloat64(),
			TotalCO2:      w.TotalCO2.InexactFloat64(),
			TopCategories: ToCategoryRollupResponses(w.TopCategories),
		})
	}
	return out
}

// ToScoreResponse converts the score use case output.
func ToScoreResponse(output *scoring.GetScoreOutput) ScoreResponse {
	return ScoreResponse{
		UserID:               output.UserID,
		Period:               ToPeriodResponse(output.Period),
		ScoreSummaryResponse: ToScoreSummaryResponse(output.Summary),
		CategoryRollups:      ToCategoryRollupResponses(output.Rollups),
		WeekProfiles:         ToWeekProfileResponses(output.Weeks),
		Source:               output.Source,
	}
}

// ToMonthlyScoresResponse converts the monthly score use case output.
func ToMonthlyScoresResponse(output *scoring.GetMonthlyScoresOutput) MonthlyScoresResponse {
	scores := make([]MonthlyScoreResponse, 0, len(output.Scores))
	for _, s := range output.Scores {
		scores = append(scores, MonthlyScoreResponse{
			Month:     s.Month,
			Label:     s.Label,
			Score:     s.Score,
			TotalCO2e: s.TotalCO2e.InexactFloat64(),
			TxCount:   s.TxCount,
		})
	}
	return MonthlyScoresResponse{
		UserID: output.UserID,
		Scores: scores,
		Source: output.Source,
	}
}
