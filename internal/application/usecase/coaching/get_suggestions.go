// Package coaching derives improvement suggestions from week profiles and records acknowledgements.
package coaching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// Source values for the suggestions payload.
const (
	SourceLive = "live"
	// SourcePartial means acks could not be read, so handled suggestions may resurface.
	SourcePartial = "partial"
)

// Config holds the coaching policy.
type Config struct {
	DefaultWeeks int
	MaxWeeks     int
}

// GetSuggestionsInput represents the input for the coaching view.
type GetSuggestionsInput struct {
	UserID         string
	Weeks          int // 0 selects the default, values above the maximum are capped
	IncludeHistory bool
}

// GetSuggestionsOutput represents the coaching payload.
type GetSuggestionsOutput struct {
	UserID      string
	GeneratedAt time.Time
	Profiles    []entity.WeekProfile
	Suggestions []entity.CoachingSuggestion
	Source      string
}

// GetSuggestionsUseCase builds week profiles and coaching suggestions for a user.
type GetSuggestionsUseCase struct {
	loader    *transaction.Loader
	ackRepo   adapter.AckRepository
	generator *Generator
	writer    adapter.CoachingWriter
	config    Config
	now       func() time.Time
}

// NewGetSuggestionsUseCase creates a new GetSuggestionsUseCase instance. writer may be nil.
func NewGetSuggestionsUseCase(
	loader *transaction.Loader,
	ackRepo adapter.AckRepository,
	generator *Generator,
	writer adapter.CoachingWriter,
	config Config,
	now func() time.Time,
) *GetSuggestionsUseCase {
	return &GetSuggestionsUseCase{
		loader:    loader,
		ackRepo:   ackRepo,
		generator: generator,
		writer:    writer,
		config:    config,
		now:       now,
	}
}

// Execute performs the suggestion generation.
func (uc *GetSuggestionsUseCase) Execute(ctx context.Context, input GetSuggestionsInput) (*GetSuggestionsOutput, error) {
	weeks, err := uc.resolveWeeks(input.Weeks)
	if err != nil {
		return nil, err
	}

	txs, err := uc.loader.Load(ctx, input.UserID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	profiles := MostRecent(aggregation.WeekProfiles(txs), weeks)

	source := SourceLive
	acks, err := uc.ackRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		slog.Warn("failed to load coaching acks", "user_id", input.UserID, "error", err)
		acks = nil
		source = SourcePartial
	}

	suggestions := uc.generator.Generate(input.UserID, profiles, acks, GenerateOptions{
		Weeks:          weeks,
		IncludeHistory: input.IncludeHistory,
	})

	return &GetSuggestionsOutput{
		UserID:      input.UserID,
		GeneratedAt: uc.now().UTC(),
		Profiles:    profiles,
		Suggestions: uc.personalize(ctx, input.UserID, suggestions),
		Source:      source,
	}, nil
}

func (uc *GetSuggestionsUseCase) resolveWeeks(weeks int) (int, error) {
	if weeks < 0 {
		return 0, domainerror.NewCoachingError(
			domainerror.ErrCodeInvalidWeeks,
			fmt.Sprintf("invalid weeks %d", weeks),
			domainerror.ErrInvalidWeeks,
		)
	}
	if weeks == 0 {
		weeks = uc.config.DefaultWeeks
	}
	if weeks > uc.config.MaxWeeks {
		weeks = uc.config.MaxWeeks
	}
	return weeks, nil
}

// personalize lets the writer rewrite copy. Ids, savings and labels always
// come from the generator; any writer failure keeps the template copy.
func (uc *GetSuggestionsUseCase) personalize(ctx context.Context, userID string, suggestions []entity.CoachingSuggestion) []entity.CoachingSuggestion {
	if uc.writer == nil || !uc.writer.IsAvailable() || len(suggestions) == 0 {
		return suggestions
	}

	rewritten, err := uc.writer.Rewrite(ctx, userID, suggestions)
	if err != nil {
		slog.Warn("coaching writer failed, using templates", "user_id", userID, "error", err)
		return suggestions
	}
	if len(rewritten) != len(suggestions) {
		slog.Warn("coaching writer returned wrong count, using templates",
			"user_id", userID,
			"expected", len(suggestions),
			"got", len(rewritten),
		)
		return suggestions
	}

	out := make([]entity.CoachingSuggestion, len(suggestions))
	for i, s := range suggestions {
		if rewritten[i].Title != "" {
			s.Title = rewritten[i].Title
		}
		if rewritten[i].Description != "" {
			s.Description = rewritten[i].Description
		}
		out[i] = s
	}
	return out
}
