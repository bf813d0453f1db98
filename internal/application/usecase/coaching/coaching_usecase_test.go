package coaching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/domain/valueobject"
)

type fakeTransactionRepository struct {
	txs []*entity.Transaction
	err error
}

func (f *fakeTransactionRepository) ListByUser(context.Context, string, time.Time, time.Time) ([]*entity.Transaction, error) {
	return f.txs, f.err
}

func (f *fakeTransactionRepository) ListUserIDs(context.Context) ([]string, error) {
	return nil, f.err
}

func (f *fakeTransactionRepository) CreateBatch(context.Context, []*entity.Transaction) error {
	return f.err
}

type fakeAckRepository struct {
	mu        sync.Mutex
	acks      map[string]*entity.CoachingAck
	listErr   error
	upsertErr error
}

func newFakeAckRepository() *fakeAckRepository {
	return &fakeAckRepository{acks: make(map[string]*entity.CoachingAck)}
}

func (f *fakeAckRepository) GetAckStatus(_ context.Context, userID, suggestionID string) (*entity.CoachingAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acks[userID+"/"+suggestionID], nil
}

func (f *fakeAckRepository) ListByUser(_ context.Context, userID string) (map[string]entity.AckAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make(map[string]entity.AckAction)
	for _, ack := range f.acks {
		if ack.UserID == userID {
			out[ack.SuggestionID] = ack.Action
		}
	}
	return out, nil
}

func (f *fakeAckRepository) Upsert(_ context.Context, ack *entity.CoachingAck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := *ack
	f.acks[ack.UserID+"/"+ack.SuggestionID] = &copied
	return nil
}

type fakeWriter struct {
	err   error
	count int
}

func (f *fakeWriter) IsAvailable() bool { return true }

func (f *fakeWriter) Rewrite(_ context.Context, _ string, in []entity.CoachingSuggestion) ([]entity.CoachingSuggestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	n := len(in)
	if f.count > 0 {
		n = f.count
	}
	out := make([]entity.CoachingSuggestion, n)
	for i := range out {
		out[i] = entity.CoachingSuggestion{
			SuggestionID:       "tampered",
			Title:              "Personal title",
			Description:        "Personal description",
			EstimatedSavingsKg: 999,
		}
	}
	return out, nil
}

func tx(id, category, amount, date string) *entity.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return &entity.Transaction{ID: id, UserID: "u1", CategoryID: category, Amount: decimal.RequireFromString(amount), Date: d}
}

func newLoader(t *testing.T, repo *fakeTransactionRepository) *transaction.Loader {
	t.Helper()
	table, err := valueobject.DefaultEmissionTable()
	if err != nil {
		t.Fatalf("DefaultEmissionTable() error = %v", err)
	}
	return transaction.NewLoader(repo, transaction.NewNormalizer(table, valueobject.DefaultScoringConfig()))
}

func now() time.Time {
	return time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC)
}

var testConfig = Config{DefaultWeeks: 4, MaxWeeks: 8}

func history() *fakeTransactionRepository {
	return &fakeTransactionRepository{txs: []*entity.Transaction{
		tx("1", "flights", "300", "2024-01-02"),
		tx("2", "transit", "20", "2024-01-03"),
		tx("3", "fuel", "60", "2024-01-09"),
		tx("4", "groceries", "80", "2024-01-10"),
	}}
}

func TestGetSuggestionsUseCase_AckThenRegenerate(t *testing.T) {
	repo := history()
	acks := newFakeAckRepository()
	generator := NewGenerator(0.2)
	get := NewGetSuggestionsUseCase(newLoader(t, repo), acks, generator, nil, testConfig, now)
	ack := NewAcknowledgeUseCase(newLoader(t, repo), acks, generator, true, testConfig.MaxWeeks, now)

	first, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(first.Suggestions) != 2 {
		t.Fatalf("len(Suggestions) = %d, want 2 (fuel and flights)", len(first.Suggestions))
	}
	if len(first.Profiles) != 2 {
		t.Errorf("len(Profiles) = %d, want 2", len(first.Profiles))
	}
	// Most recent week first: fuel in W2, flights in W1.
	if first.Suggestions[0].CategoryID != "fuel" || first.Suggestions[1].CategoryID != "flights" {
		t.Errorf("suggestions = [%s %s], want [fuel flights]", first.Suggestions[0].CategoryID, first.Suggestions[1].CategoryID)
	}
	// fuel: 60 * 2.1 = 126 kg, 20% = 25.2
	if first.Suggestions[0].EstimatedSavingsKg != 25.2 {
		t.Errorf("EstimatedSavingsKg = %v, want 25.2", first.Suggestions[0].EstimatedSavingsKg)
	}

	target := first.Suggestions[0].SuggestionID
	out, err := ack.Execute(context.Background(), AcknowledgeInput{UserID: "u1", SuggestionID: target, Action: "dismissed"})
	if err != nil {
		t.Fatalf("Acknowledge error = %v", err)
	}
	if out.Status != AckStatusRecorded || out.Action != entity.AckActionDismissed {
		t.Errorf("Acknowledge = %+v, want recorded/dismissed", out)
	}

	second, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, s := range second.Suggestions {
		if s.SuggestionID == target {
			t.Errorf("dismissed suggestion %s resurfaced", target)
		}
	}

	withHistory, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1", IncludeHistory: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(withHistory.Suggestions) != 2 || withHistory.Suggestions[0].Status != "dismissed" {
		t.Errorf("history = %+v, want dismissed suggestion included", withHistory.Suggestions)
	}
}

func TestGetSuggestionsUseCase_Weeks(t *testing.T) {
	get := NewGetSuggestionsUseCase(newLoader(t, history()), newFakeAckRepository(), NewGenerator(0.2), nil, testConfig, now)

	one, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1", Weeks: 1})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(one.Profiles) != 1 || len(one.Suggestions) != 1 {
		t.Errorf("weeks=1 gave %d profiles and %d suggestions, want 1 and 1", len(one.Profiles), len(one.Suggestions))
	}

	capped, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1", Weeks: 52})
	if err != nil {
		t.Fatalf("Execute(weeks=52) error = %v", err)
	}
	if len(capped.Profiles) != 2 {
		t.Errorf("len(Profiles) = %d, want 2", len(capped.Profiles))
	}

	if _, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1", Weeks: -1}); !errors.Is(err, domainerror.ErrInvalidWeeks) {
		t.Errorf("Execute(weeks=-1) error = %v, want ErrInvalidWeeks", err)
	}
}

func TestGetSuggestionsUseCase_Degrades(t *testing.T) {
	acks := newFakeAckRepository()
	acks.listErr = errors.New("ack store down")
	get := NewGetSuggestionsUseCase(newLoader(t, history()), acks, NewGenerator(0.2), nil, testConfig, now)

	out, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Source != SourcePartial {
		t.Errorf("Source = %s, want %s", out.Source, SourcePartial)
	}

	down := NewGetSuggestionsUseCase(newLoader(t, &fakeTransactionRepository{err: errors.New("down")}), newFakeAckRepository(), NewGenerator(0.2), nil, testConfig, now)
	if _, err := down.Execute(context.Background(), GetSuggestionsInput{UserID: "u1"}); !domainerror.IsUpstreamUnavailable(err) {
		t.Errorf("Execute() error = %v, want upstream unavailable", err)
	}
}

func TestGetSuggestionsUseCase_Writer(t *testing.T) {
	tests := []struct {
		name      string
		writer    *fakeWriter
		wantTitle string
	}{
		{"rewrites copy only", &fakeWriter{}, "Personal title"},
		{"error keeps templates", &fakeWriter{err: errors.New("quota")}, defaultTemplates["fuel"].Title},
		{"wrong count keeps templates", &fakeWriter{count: 1}, defaultTemplates["fuel"].Title},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			get := NewGetSuggestionsUseCase(newLoader(t, history()), newFakeAckRepository(), NewGenerator(0.2), tt.writer, testConfig, now)
			out, err := get.Execute(context.Background(), GetSuggestionsInput{UserID: "u1"})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			s := out.Suggestions[0]
			if s.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", s.Title, tt.wantTitle)
			}
			if s.SuggestionID != SuggestionID("u1", "fuel", 2024, 2) || s.EstimatedSavingsKg != 25.2 {
				t.Errorf("writer changed id or savings: %+v", s)
			}
		})
	}
}

func TestAcknowledgeUseCase_Validation(t *testing.T) {
	ack := NewAcknowledgeUseCase(newLoader(t, history()), newFakeAckRepository(), NewGenerator(0.2), true, 8, now)

	tests := []struct {
		name    string
		input   AcknowledgeInput
		wantErr error
	}{
		{"missing user", AcknowledgeInput{SuggestionID: "x", Action: "accepted"}, domainerror.ErrMissingAckFields},
		{"missing suggestion", AcknowledgeInput{UserID: "u1", Action: "accepted"}, domainerror.ErrMissingAckFields},
		{"missing action", AcknowledgeInput{UserID: "u1", SuggestionID: "x"}, domainerror.ErrMissingAckFields},
		{"unknown action", AcknowledgeInput{UserID: "u1", SuggestionID: "x", Action: "snoozed"}, domainerror.ErrInvalidAckAction},
		{"unknown suggestion", AcknowledgeInput{UserID: "u1", SuggestionID: "x", Action: "accepted"}, domainerror.ErrSuggestionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ack.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAcknowledgeUseCase_LastWriteWins(t *testing.T) {
	acks := newFakeAckRepository()
	ack := NewAcknowledgeUseCase(newLoader(t, history()), acks, NewGenerator(0.2), true, 8, now)
	id := SuggestionID("u1", "flights", 2024, 1)

	for _, action := range []string{"accepted", "dismissed", "dismissed"} {
		if _, err := ack.Execute(context.Background(), AcknowledgeInput{UserID: "u1", SuggestionID: id, Action: action}); err != nil {
			t.Fatalf("Execute(%s) error = %v", action, err)
		}
	}

	stored, _ := acks.GetAckStatus(context.Background(), "u1", id)
	if stored == nil || stored.Action != entity.AckActionDismissed {
		t.Errorf("stored ack = %+v, want dismissed", stored)
	}
	if len(acks.acks) != 1 {
		t.Errorf("stored %d acks, want 1", len(acks.acks))
	}
}

func TestAcknowledgeUseCase_AcceptUnknownWhenNotRequired(t *testing.T) {
	ack := NewAcknowledgeUseCase(newLoader(t, &fakeTransactionRepository{err: errors.New("unused")}), newFakeAckRepository(), NewGenerator(0.2), false, 8, now)

	out, err := ack.Execute(context.Background(), AcknowledgeInput{UserID: "u1", SuggestionID: "anything", Action: "Accepted"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Action != entity.AckActionAccepted {
		t.Errorf("Action = %s, want accepted", out.Action)
	}
}

func TestAcknowledgeUseCase_WriteFailsLoudly(t *testing.T) {
	acks := newFakeAckRepository()
	acks.upsertErr = errors.New("disk full")
	ack := NewAcknowledgeUseCase(newLoader(t, history()), acks, NewGenerator(0.2), false, 8, now)

	_, err := ack.Execute(context.Background(), AcknowledgeInput{UserID: "u1", SuggestionID: "x", Action: "accepted"})
	if !errors.Is(err, domainerror.ErrAckStoreUnavailable) || !domainerror.IsUpstreamUnavailable(err) {
		t.Errorf("Execute() error = %v, want ack store unavailable", err)
	}
}
