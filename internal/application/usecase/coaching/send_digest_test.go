package coaching

import (
	"context"
	"errors"
	"testing"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

type fakeUserRepository struct {
	users map[string]*entity.User
}

func (f *fakeUserRepository) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepository) Insert(context.Context, *entity.User) error {
	return nil
}

type fakeMailer struct {
	failFor string
	sent    []adapter.CoachingDigest
}

func (f *fakeMailer) SendDigest(_ context.Context, digest adapter.CoachingDigest) (*adapter.SendEmailResult, error) {
	if digest.User.ID == f.failFor {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"provider down",
			domainerror.ErrTemporaryEmailFailure,
		)
	}
	f.sent = append(f.sent, digest)
	return &adapter.SendEmailResult{MessageID: "msg-1"}, nil
}

func TestSendDigestUseCase_Execute(t *testing.T) {
	repo := history()
	get := NewGetSuggestionsUseCase(newLoader(t, repo), newFakeAckRepository(), NewGenerator(0.2), nil, testConfig, now)
	users := &fakeUserRepository{users: map[string]*entity.User{
		"u1": {ID: "u1", Email: "u1@example.com", DisplayName: "Una"},
		"u3": {ID: "u3", Email: "u3@example.com", DisplayName: "Theo"},
	}}
	mailer := &fakeMailer{failFor: "u3"}
	uc := NewSendDigestUseCase(newLoader(t, repo), users, get, mailer)

	out, err := uc.Execute(context.Background(), SendDigestInput{UserIDs: []string{"u1", "ghost", "u3"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out.Sent != 1 {
		t.Errorf("Sent = %d, want 1", out.Sent)
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "ghost" {
		t.Errorf("Skipped = %v, want [ghost]", out.Skipped)
	}
	if _, ok := out.Failed["u3"]; !ok || len(out.Failed) != 1 {
		t.Errorf("Failed = %v, want only u3", out.Failed)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("mailed %d digests, want 1", len(mailer.sent))
	}
	digest := mailer.sent[0]
	if len(digest.Suggestions) != 2 {
		t.Errorf("digest has %d suggestions, want 2", len(digest.Suggestions))
	}
	var sum float64
	for _, s := range digest.Suggestions {
		sum += s.EstimatedSavingsKg
	}
	if diff := digest.TotalSavingsKg - sum; diff > 0.01 || diff < -0.01 {
		t.Errorf("TotalSavingsKg = %v, want about %v", digest.TotalSavingsKg, sum)
	}
}

func TestSendDigestUseCase_NoSuggestionsIsSkipped(t *testing.T) {
	repo := &fakeTransactionRepository{txs: []*entity.Transaction{
		tx("1", "transit", "20", "2024-01-03"),
	}}
	get := NewGetSuggestionsUseCase(newLoader(t, repo), newFakeAckRepository(), NewGenerator(0.2), nil, testConfig, now)
	users := &fakeUserRepository{users: map[string]*entity.User{"u1": {ID: "u1", Email: "u1@example.com"}}}
	mailer := &fakeMailer{}

	out, err := NewSendDigestUseCase(newLoader(t, repo), users, get, mailer).
		Execute(context.Background(), SendDigestInput{UserIDs: []string{"u1"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Sent != 0 || len(out.Skipped) != 1 || len(mailer.sent) != 0 {
		t.Errorf("out = %+v, mailed %d, want u1 skipped", out, len(mailer.sent))
	}
}

func TestSendDigestUseCase_UserListFailure(t *testing.T) {
	repo := &fakeTransactionRepository{err: errors.New("db down")}
	get := NewGetSuggestionsUseCase(newLoader(t, repo), newFakeAckRepository(), NewGenerator(0.2), nil, testConfig, now)

	_, err := NewSendDigestUseCase(newLoader(t, repo), &fakeUserRepository{}, get, &fakeMailer{}).
		Execute(context.Background(), SendDigestInput{})
	if err == nil {
		t.Fatal("Execute() error = nil, want error")
	}
}
