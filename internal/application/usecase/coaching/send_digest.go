package coaching

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// SendDigestInput represents the input for a digest run.
type SendDigestInput struct {
	Weeks int
	// UserIDs restricts the run. Empty means every user with transactions.
	UserIDs []string
}

// SendDigestOutput summarizes a digest run.
type SendDigestOutput struct {
	Sent int
	// Skipped lists users without an account or without open suggestions.
	Skipped []string
	// Failed maps user ids to the error that stopped their digest.
	Failed map[string]string
}

// SendDigestUseCase mails each user the suggestions they have not acknowledged yet.
type SendDigestUseCase struct {
	loader      *transaction.Loader
	userRepo    adapter.UserRepository
	suggestions *GetSuggestionsUseCase
	mailer      adapter.DigestMailer
}

// NewSendDigestUseCase creates a new SendDigestUseCase instance.
func NewSendDigestUseCase(
	loader *transaction.Loader,
	userRepo adapter.UserRepository,
	suggestions *GetSuggestionsUseCase,
	mailer adapter.DigestMailer,
) *SendDigestUseCase {
	return &SendDigestUseCase{
		loader:      loader,
		userRepo:    userRepo,
		suggestions: suggestions,
		mailer:      mailer,
	}
}

// Execute sends one digest per user. A failing user does not stop the run;
// only failures to enumerate users are returned as errors.
func (uc *SendDigestUseCase) Execute(ctx context.Context, input SendDigestInput) (*SendDigestOutput, error) {
	userIDs := input.UserIDs
	if len(userIDs) == 0 {
		ids, err := uc.loader.UserIDs(ctx)
		if err != nil {
			return nil, err
		}
		userIDs = ids
	}

	output := &SendDigestOutput{Failed: map[string]string{}}

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		sent, err := uc.sendOne(ctx, userID, input.Weeks)
		switch {
		case err != nil:
			slog.Warn("coaching digest failed", "user_id", userID, "error", err)
			output.Failed[userID] = err.Error()
		case sent:
			output.Sent++
		default:
			output.Skipped = append(output.Skipped, userID)
		}
	}

	slog.Info("coaching digests sent",
		"sent", output.Sent,
		"skipped", len(output.Skipped),
		"failed", len(output.Failed),
	)
	return output, nil
}

func (uc *SendDigestUseCase) sendOne(ctx context.Context, userID string, weeks int) (bool, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	result, err := uc.suggestions.Execute(ctx, GetSuggestionsInput{UserID: userID, Weeks: weeks})
	if err != nil {
		return false, err
	}
	if len(result.Suggestions) == 0 {
		return false, nil
	}

	total := decimal.Zero
	for _, s := range result.Suggestions {
		total = total.Add(decimal.NewFromFloat(s.EstimatedSavingsKg))
	}

	_, err = uc.mailer.SendDigest(ctx, adapter.CoachingDigest{
		User:           user,
		Suggestions:    result.Suggestions,
		TotalSavingsKg: total.Round(2).InexactFloat64(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
