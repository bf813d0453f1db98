package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/ecoimpact/backend/internal/application/usecase/coaching"
	"github.com/ecoimpact/backend/internal/application/usecase/goal"
	"github.com/ecoimpact/backend/internal/application/usecase/leaderboard"
	"github.com/ecoimpact/backend/internal/application/usecase/scoring"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

type stubScore struct{ err error }

func (s stubScore) Execute(_ context.Context, input scoring.GetScoreInput) (*scoring.GetScoreOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &scoring.GetScoreOutput{UserID: input.UserID, Source: scoring.SourceLive}, nil
}

type stubGoals struct{ err error }

func (s stubGoals) Execute(context.Context, goal.ListGoalsInput) (*goal.ListGoalsOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &goal.ListGoalsOutput{SchemaVersion: "v1"}, nil
}

type stubTop struct{ err error }

func (s stubTop) Execute(context.Context, transaction.GetTopTransactionsInput) (*transaction.GetTopTransactionsOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &transaction.GetTopTransactionsOutput{}, nil
}

type stubCoaching struct{ err error }

func (s stubCoaching) Execute(_ context.Context, input coaching.GetSuggestionsInput) (*coaching.GetSuggestionsOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &coaching.GetSuggestionsOutput{UserID: input.UserID}, nil
}

type stubLeaderboard struct{ err error }

func (s stubLeaderboard) Execute(context.Context, leaderboard.GetLeaderboardInput) (*leaderboard.GetLeaderboardOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &leaderboard.GetLeaderboardOutput{Source: leaderboard.SourceDemo}, nil
}

func TestGetDashboardUseCase(t *testing.T) {
	tests := []struct {
		name        string
		uc          *GetDashboardUseCase
		wantErr     error
		wantSection string
	}{
		{
			name: "all cards",
			uc:   NewGetDashboardUseCase(stubScore{}, stubGoals{}, stubTop{}, stubCoaching{}, stubLeaderboard{}),
		},
		{
			name:        "failing card degrades",
			uc:          NewGetDashboardUseCase(stubScore{}, stubGoals{err: domainerror.ErrGoalStoreUnavailable}, stubTop{}, stubCoaching{}, stubLeaderboard{}),
			wantSection: SectionGoals,
		},
		{
			name:    "validation fails the request",
			uc:      NewGetDashboardUseCase(stubScore{err: domainerror.ErrInvalidMonth}, stubGoals{}, stubTop{}, stubCoaching{}, stubLeaderboard{}),
			wantErr: domainerror.ErrInvalidMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.uc.Execute(context.Background(), GetDashboardInput{UserID: "u1"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if tt.wantSection == "" {
				if len(out.Errors) != 0 {
					t.Errorf("Errors = %v, want none", out.Errors)
				}
				if out.Score == nil || out.Goals == nil || out.TopTransactions == nil || out.Coaching == nil || out.Leaderboard == nil {
					t.Errorf("missing card in %+v", out)
				}
				return
			}

			if _, ok := out.Errors[tt.wantSection]; !ok || len(out.Errors) != 1 {
				t.Errorf("Errors = %v, want only %s", out.Errors, tt.wantSection)
			}
			if out.Goals != nil {
				t.Error("failed card should be nil")
			}
			if out.Score == nil || out.Coaching == nil {
				t.Error("healthy cards missing")
			}
		})
	}
}
