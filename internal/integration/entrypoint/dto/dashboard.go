package dto

import "github.com/ecoimpact/backend/internal/application/usecase/dashboard"

// DashboardResponse holds every dashboard card. Failed cards are null and
// their error is listed under the card name.
type DashboardResponse struct {
	UserID          string                   `json:"user_id"`
	Score           *ScoreResponse           `json:"score"`
	Goals           *GoalListResponse        `json:"goals"`
	TopTransactions *TopTransactionsResponse `json:"top_transactions"`
	Coaching        *SuggestionsResponse     `json:"coaching"`
	Leaderboard     *LeaderboardResponse     `json:"leaderboard"`
	Errors          map[string]string        `json:"errors,omitempty"`
}

// ToDashboardResponse converts the dashboard use case output.
func ToDashboardResponse(output *dashboard.GetDashboardOutput) DashboardResponse {
	response := DashboardResponse{
		UserID: output.UserID,
		Errors: output.Errors,
	}
	if output.Score != nil {
		score := ToScoreResponse(output.Score)
		response.Score = &score
	}
	if output.Goals != nil {
		goals := ToGoalListResponse(output.Goals)
		response.Goals = &goals
	}
	if output.TopTransactions != nil {
		top := ToTopTransactionsResponse(output.TopTransactions)
		response.TopTransactions = &top
	}
	if output.Coaching != nil {
		suggestions := ToSuggestionsResponse(output.Coaching)
		response.Coaching = &suggestions
	}
	if output.Leaderboard != nil {
		board := ToLeaderboardResponse(output.Leaderboard)
		response.Leaderboard = &board
	}
	return response
}
