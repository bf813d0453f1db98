package adapter

import (
	"context"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	MessageID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// CoachingDigest is the weekly summary of open suggestions mailed to one user.
type CoachingDigest struct {
	User           *entity.User
	Suggestions    []entity.CoachingSuggestion
	TotalSavingsKg float64
}

// DigestMailer renders and delivers coaching digests.
type DigestMailer interface {
	SendDigest(ctx context.Context, digest CoachingDigest) (*SendEmailResult, error)
}
