package goal

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

type fakeGoalRepository struct {
	goals []*entity.Goal
	err   error
}

func (f *fakeGoalRepository) FindByUserID(_ context.Context, userID string) ([]*entity.Goal, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepository) Create(_ context.Context, goal *entity.Goal) error {
	if f.err != nil {
		return f.err
	}
	f.goals = append(f.goals, goal)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
}

func TestListGoalsUseCase(t *testing.T) {
	tests := []struct {
		name      string
		repo      *fakeGoalRepository
		wantCount int
		wantErr   error
	}{
		{
			name: "passes goals through",
			repo: &fakeGoalRepository{goals: []*entity.Goal{
				{ID: "g1", UserID: "u1", Title: "Fly less", Current: 1, Target: 2, Unit: "flights"},
				{ID: "g2", UserID: "u1", Title: "Bike more", Current: 0, Target: 20, Unit: "km"},
				{ID: "g3", UserID: "u2", Title: "Other user", Current: 0, Target: 1},
			}},
			wantCount: 2,
		},
		{
			name:      "no goals is an empty list",
			repo:      &fakeGoalRepository{},
			wantCount: 0,
		},
		{
			name: "zero target fails loudly",
			repo: &fakeGoalRepository{goals: []*entity.Goal{
				{ID: "g1", UserID: "u1", Title: "Broken", Target: 0},
			}},
			wantErr: domainerror.ErrInvalidGoalShape,
		},
		{
			name: "empty title fails loudly",
			repo: &fakeGoalRepository{goals: []*entity.Goal{
				{ID: "g1", UserID: "u1", Title: "  ", Target: 5},
			}},
			wantErr: domainerror.ErrInvalidGoalShape,
		},
		{
			name: "non-finite progress fails loudly",
			repo: &fakeGoalRepository{goals: []*entity.Goal{
				{ID: "g1", UserID: "u1", Title: "NaN", Current: math.NaN(), Target: 5},
			}},
			wantErr: domainerror.ErrInvalidGoalShape,
		},
		{
			name:    "store failure",
			repo:    &fakeGoalRepository{err: errors.New("connection refused")},
			wantErr: domainerror.ErrGoalStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewListGoalsUseCase(tt.repo).Execute(context.Background(), ListGoalsInput{UserID: "u1"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out.SchemaVersion != entity.GoalSchemaVersion {
				t.Errorf("SchemaVersion = %q", out.SchemaVersion)
			}
			if out.Goals == nil || len(out.Goals) != tt.wantCount {
				t.Errorf("Goals = %v, want %d goals", out.Goals, tt.wantCount)
			}
		})
	}
}

func TestListGoalsUseCase_ShapeErrorIsNotValidation(t *testing.T) {
	repo := &fakeGoalRepository{goals: []*entity.Goal{{ID: "g1", UserID: "u1", Title: "x", Target: -1}}}
	_, err := NewListGoalsUseCase(repo).Execute(context.Background(), ListGoalsInput{UserID: "u1"})
	if domainerror.IsValidation(err) {
		t.Errorf("stored shape error reported as caller validation: %v", err)
	}
}

func TestCreateGoalUseCase(t *testing.T) {
	repo := &fakeGoalRepository{}
	uc := NewCreateGoalUseCase(repo, fixedNow)

	out, err := uc.Execute(context.Background(), CreateGoalInput{UserID: "u1", Title: " Fly less ", Target: 2, Unit: "flights"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Goal.ID == "" || out.Goal.Title != "Fly less" || !out.Goal.CreatedAt.Equal(fixedNow()) {
		t.Errorf("Goal = %+v", out.Goal)
	}
	if len(repo.goals) != 1 {
		t.Errorf("stored %d goals, want 1", len(repo.goals))
	}

	invalid := []CreateGoalInput{
		{UserID: "u1", Title: "", Target: 2},
		{UserID: "u1", Title: "x", Target: 0},
		{UserID: "u1", Title: "x", Target: 2, Current: -1},
		{Title: "x", Target: 2},
	}
	for _, in := range invalid {
		if _, err := uc.Execute(context.Background(), in); !errors.Is(err, domainerror.ErrInvalidGoalInput) {
			t.Errorf("Execute(%+v) error = %v, want ErrInvalidGoalInput", in, err)
		}
	}

	failing := NewCreateGoalUseCase(&fakeGoalRepository{err: errors.New("down")}, fixedNow)
	if _, err := failing.Execute(context.Background(), CreateGoalInput{UserID: "u1", Title: "x", Target: 1}); !domainerror.IsUpstreamUnavailable(err) {
		t.Errorf("Execute() error = %v, want upstream unavailable", err)
	}
}
