package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/integration/email/templates"
)

type recordingSender struct {
	failures []error
	sent     []adapter.SendEmailInput
	calls    int
}

func (r *recordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	r.calls++
	if len(r.failures) > 0 {
		err := r.failures[0]
		r.failures = r.failures[1:]
		return nil, err
	}
	r.sent = append(r.sent, input)
	return &adapter.SendEmailResult{MessageID: "msg-1"}, nil
}

func temporary() error {
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "rate limited", domainerror.ErrTemporaryEmailFailure)
}

func permanent() error {
	return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "bad address", domainerror.ErrPermanentEmailFailure)
}

func digest() adapter.CoachingDigest {
	return adapter.CoachingDigest{
		User: &entity.User{ID: "u1", Email: "una@example.com", DisplayName: "Una"},
		Suggestions: []entity.CoachingSuggestion{
			{Title: "Fly less <often>", Description: "Take the train.", CategoryName: "Flights", EstimatedSavingsKg: 55.8},
		},
		TotalSavingsKg: 55.8,
	}
}

func newMailer(t *testing.T, sender adapter.EmailSender, attempts int) *DigestMailer {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return NewDigestMailer(sender, renderer, MailerConfig{MaxAttempts: attempts})
}

func TestDigestMailer_SendDigest(t *testing.T) {
	sender := &recordingSender{}

	result, err := newMailer(t, sender, 3).SendDigest(context.Background(), digest())
	if err != nil {
		t.Fatalf("SendDigest() error = %v", err)
	}
	if result.MessageID != "msg-1" || len(sender.sent) != 1 {
		t.Fatalf("result = %+v, sent = %d", result, len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.To != "una@example.com" || msg.Name != "Una" {
		t.Errorf("recipient = %s <%s>", msg.Name, msg.To)
	}
	if !strings.Contains(msg.Subject, "1 ideas") || !strings.Contains(msg.Subject, "55.8 kg") {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Fly less &lt;often&gt;") {
		t.Errorf("HTML is not escaped: %s", msg.HTML)
	}
	if !strings.Contains(msg.Text, "- Fly less <often> (Flights, about 55.8 kg)") {
		t.Errorf("Text = %s", msg.Text)
	}
}

func TestDigestMailer_Retries(t *testing.T) {
	tests := []struct {
		name      string
		failures  []error
		attempts  int
		wantErr   bool
		wantCalls int
	}{
		{name: "temporary then success", failures: []error{temporary()}, attempts: 3, wantCalls: 2},
		{name: "temporary until exhausted", failures: []error{temporary(), temporary()}, attempts: 2, wantErr: true, wantCalls: 2},
		{name: "permanent is not retried", failures: []error{permanent()}, attempts: 3, wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{failures: tt.failures}

			_, err := newMailer(t, sender, tt.attempts).SendDigest(context.Background(), digest())
			if (err != nil) != tt.wantErr {
				t.Fatalf("SendDigest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if sender.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", sender.calls, tt.wantCalls)
			}
		})
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: errors.New("401 Unauthorized"), want: true},
		{err: errors.New("422 validation_error: invalid to field"), want: true},
		{err: errors.New("429 rate limit exceeded"), want: false},
		{err: errors.New("502 bad gateway"), want: false},
		{err: nil, want: false},
	}

	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.want {
			t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
