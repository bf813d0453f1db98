// Package coaching derives improvement suggestions from week profiles and records acknowledgements.
package coaching

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/aggregation"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// AckStatusRecorded is the status returned for a stored acknowledgement.
const AckStatusRecorded = "recorded"

// AcknowledgeInput represents an acknowledgement request.
type AcknowledgeInput struct {
	UserID       string
	SuggestionID string
	Action       string
}

// AcknowledgeOutput represents a stored acknowledgement.
type AcknowledgeOutput struct {
	Status       string
	UserID       string
	SuggestionID string
	Action       entity.AckAction
	RecordedAt   time.Time
}

// AcknowledgeUseCase records accepted / dismissed responses to suggestions.
type AcknowledgeUseCase struct {
	loader       *transaction.Loader
	ackRepo      adapter.AckRepository
	generator    *Generator
	requireKnown bool
	maxWeeks     int
	now          func() time.Time
}

// NewAcknowledgeUseCase creates a new AcknowledgeUseCase instance.
// With requireKnown, ids never generated for the user within maxWeeks fail with not found.
func NewAcknowledgeUseCase(
	loader *transaction.Loader,
	ackRepo adapter.AckRepository,
	generator *Generator,
	requireKnown bool,
	maxWeeks int,
	now func() time.Time,
) *AcknowledgeUseCase {
	return &AcknowledgeUseCase{
		loader:       loader,
		ackRepo:      ackRepo,
		generator:    generator,
		requireKnown: requireKnown,
		maxWeeks:     maxWeeks,
		now:          now,
	}
}

// Execute validates and stores the acknowledgement. Repeating it overwrites the prior action.
func (uc *AcknowledgeUseCase) Execute(ctx context.Context, input AcknowledgeInput) (*AcknowledgeOutput, error) {
	userID := strings.TrimSpace(input.UserID)
	suggestionID := strings.TrimSpace(input.SuggestionID)
	action := entity.AckAction(strings.ToLower(strings.TrimSpace(input.Action)))

	if userID == "" || suggestionID == "" || action == "" {
		return nil, domainerror.NewCoachingError(
			domainerror.ErrCodeMissingAckFields,
			"suggestion_id, action and user_id are required",
			domainerror.ErrMissingAckFields,
		)
	}

	if !action.IsValid() {
		return nil, domainerror.NewCoachingError(
			domainerror.ErrCodeInvalidAckAction,
			"action must be 'accepted' or 'dismissed'",
			domainerror.ErrInvalidAckAction,
		)
	}

	if uc.requireKnown {
		if err := uc.ensureKnown(ctx, userID, suggestionID); err != nil {
			return nil, err
		}
	}

	ack := &entity.CoachingAck{
		UserID:       userID,
		SuggestionID: suggestionID,
		Action:       action,
		RecordedAt:   uc.now().UTC(),
	}

	if err := uc.ackRepo.Upsert(ctx, ack); err != nil {
		return nil, domainerror.NewCoachingError(
			domainerror.ErrCodeAckStoreUnavailable,
			"failed to record acknowledgement",
			errors.Join(domainerror.ErrAckStoreUnavailable, err),
		)
	}

	return &AcknowledgeOutput{
		Status:       AckStatusRecorded,
		UserID:       ack.UserID,
		SuggestionID: ack.SuggestionID,
		Action:       ack.Action,
		RecordedAt:   ack.RecordedAt,
	}, nil
}

// ensureKnown regenerates the user's suggestions, history included, and looks for the id.
func (uc *AcknowledgeUseCase) ensureKnown(ctx context.Context, userID, suggestionID string) error {
	txs, err := uc.loader.Load(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return err
	}

	profiles := aggregation.WeekProfiles(txs)
	suggestions := uc.generator.Generate(userID, profiles, nil, GenerateOptions{
		Weeks:          uc.maxWeeks,
		IncludeHistory: true,
	})

	for _, s := range suggestions {
		if s.SuggestionID == suggestionID {
			return nil
		}
	}

	return domainerror.NewCoachingError(
		domainerror.ErrCodeSuggestionNotFound,
		"suggestion was never generated for this user",
		domainerror.ErrSuggestionNotFound,
	)
}
