package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/integration/email/templates"
)

const digestTemplate = "coaching_digest"

// MailerConfig holds retry settings for the digest mailer.
type MailerConfig struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultMailerConfig returns the default mailer configuration.
func DefaultMailerConfig() MailerConfig {
	return MailerConfig{
		MaxAttempts: 3,
		Backoff:     2 * time.Second,
	}
}

// DigestMailer renders coaching digests and hands them to an EmailSender,
// retrying temporary failures with linear backoff.
type DigestMailer struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   MailerConfig
}

// NewDigestMailer creates a new digest mailer.
func NewDigestMailer(sender adapter.EmailSender, renderer *templates.Renderer, config MailerConfig) *DigestMailer {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &DigestMailer{
		sender:   sender,
		renderer: renderer,
		config:   config,
	}
}

// SendDigest implements adapter.DigestMailer.
func (m *DigestMailer) SendDigest(ctx context.Context, digest adapter.CoachingDigest) (*adapter.SendEmailResult, error) {
	logger := slog.With("user_id", digest.User.ID, "template", digestTemplate)

	html, text, err := m.renderer.Render(digestTemplate, templates.NewDigestData(digest))
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render coaching digest",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	input := adapter.SendEmailInput{
		To:      digest.User.Email,
		Name:    digest.User.DisplayName,
		Subject: fmt.Sprintf("Your week in CO2: %d ideas to save %.1f kg", len(digest.Suggestions), digest.TotalSavingsKg),
		HTML:    html,
		Text:    text,
	}

	for attempt := 1; ; attempt++ {
		result, err := m.sender.Send(ctx, input)
		if err == nil {
			logger.Info("Email sent successfully", "message_id", result.MessageID, "attempts", attempt)
			return result, nil
		}

		if domainerror.IsPermanentEmailFailure(err) || attempt >= m.config.MaxAttempts {
			logger.Warn("Email permanently failed", "attempts", attempt, "error", err)
			return nil, err
		}

		wait := time.Duration(attempt) * m.config.Backoff
		logger.Info("Email scheduled for retry", "attempts", attempt, "wait", wait, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

var _ adapter.DigestMailer = (*DigestMailer)(nil)
