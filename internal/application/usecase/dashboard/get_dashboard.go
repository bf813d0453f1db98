// Package dashboard contains the dashboard use case that assembles every card in one call.
package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ecoimpact/backend/internal/application/usecase/coaching"
	"github.com/ecoimpact/backend/internal/application/usecase/goal"
	"github.com/ecoimpact/backend/internal/application/usecase/leaderboard"
	"github.com/ecoimpact/backend/internal/application/usecase/scoring"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// Section names used as keys of DashboardOutput.Errors.
const (
	SectionScore           = "score"
	SectionGoals           = "goals"
	SectionTopTransactions = "top_transactions"
	SectionCoaching        = "coaching"
	SectionLeaderboard     = "leaderboard"
)

// ScoreReader loads the score card.
type ScoreReader interface {
	Execute(ctx context.Context, input scoring.GetScoreInput) (*scoring.GetScoreOutput, error)
}

// GoalReader loads the goals card.
type GoalReader interface {
	Execute(ctx context.Context, input goal.ListGoalsInput) (*goal.ListGoalsOutput, error)
}

// TopTransactionsReader loads the top-impact card.
type TopTransactionsReader interface {
	Execute(ctx context.Context, input transaction.GetTopTransactionsInput) (*transaction.GetTopTransactionsOutput, error)
}

// CoachingReader loads the coaching card.
type CoachingReader interface {
	Execute(ctx context.Context, input coaching.GetSuggestionsInput) (*coaching.GetSuggestionsOutput, error)
}

// LeaderboardReader loads the leaderboard card.
type LeaderboardReader interface {
	Execute(ctx context.Context, input leaderboard.GetLeaderboardInput) (*leaderboard.GetLeaderboardOutput, error)
}

// GetDashboardInput represents the input for the dashboard.
type GetDashboardInput struct {
	UserID string
	Month  string
	Days   int
}

// GetDashboardOutput holds every card. A card that failed is nil and its
// error message is listed under its section name.
type GetDashboardOutput struct {
	UserID          string
	Score           *scoring.GetScoreOutput
	Goals           *goal.ListGoalsOutput
	TopTransactions *transaction.GetTopTransactionsOutput
	Coaching        *coaching.GetSuggestionsOutput
	Leaderboard     *leaderboard.GetLeaderboardOutput
	Errors          map[string]string
}

// GetDashboardUseCase fetches the dashboard cards concurrently.
type GetDashboardUseCase struct {
	score       ScoreReader
	goals       GoalReader
	top         TopTransactionsReader
	coaching    CoachingReader
	leaderboard LeaderboardReader
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	score ScoreReader,
	goals GoalReader,
	top TopTransactionsReader,
	coachingReader CoachingReader,
	leaderboardReader LeaderboardReader,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		score:       score,
		goals:       goals,
		top:         top,
		coaching:    coachingReader,
		leaderboard: leaderboardReader,
	}
}

// Execute runs every card. Validation errors fail the whole request since they
// apply to every card; any other failure only blanks its own card.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	output := &GetDashboardOutput{
		UserID: input.UserID,
		Errors: make(map[string]string),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	run := func(section string, fetch func(context.Context) error) {
		g.Go(func() error {
			err := fetch(gctx)
			if err == nil {
				return nil
			}
			if domainerror.IsValidation(err) {
				return err
			}
			mu.Lock()
			output.Errors[section] = err.Error()
			mu.Unlock()
			return nil
		})
	}

	run(SectionScore, func(ctx context.Context) error {
		out, err := uc.score.Execute(ctx, scoring.GetScoreInput{UserID: input.UserID, Month: input.Month, Days: input.Days})
		if err == nil {
			output.Score = out
		}
		return err
	})

	run(SectionGoals, func(ctx context.Context) error {
		out, err := uc.goals.Execute(ctx, goal.ListGoalsInput{UserID: input.UserID})
		if err == nil {
			output.Goals = out
		}
		return err
	})

	run(SectionTopTransactions, func(ctx context.Context) error {
		out, err := uc.top.Execute(ctx, transaction.GetTopTransactionsInput{UserID: input.UserID, Month: input.Month, Days: input.Days})
		if err == nil {
			output.TopTransactions = out
		}
		return err
	})

	run(SectionCoaching, func(ctx context.Context) error {
		out, err := uc.coaching.Execute(ctx, coaching.GetSuggestionsInput{UserID: input.UserID})
		if err == nil {
			output.Coaching = out
		}
		return err
	})

	run(SectionLeaderboard, func(ctx context.Context) error {
		out, err := uc.leaderboard.Execute(ctx, leaderboard.GetLeaderboardInput{UserID: input.UserID})
		if err == nil {
			output.Leaderboard = out
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return output, nil
}
