// Package seed loads demo data files into the stores behind the API.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/application/usecase/goal"
	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

//go:embed demo.yaml
var demoSeed []byte

// User is a demo account.
type User struct {
	ID          string `yaml:"id"`
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name"`
	Password    string `yaml:"password"`
}

// Transaction is a raw transaction record. Amount stays a string so the
// normalizer sees exactly what the file contains.
type Transaction struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	CategoryID string `yaml:"category_id"`
	Amount     string `yaml:"amount"`
	Date       string `yaml:"date"`
}

// Goal is a v1 goal.
type Goal struct {
	Title   string  `yaml:"title"`
	Current float64 `yaml:"current"`
	Target  float64 `yaml:"target"`
	Unit    string  `yaml:"unit"`
}

// File is the seed document. Transactions and goals are keyed by user id.
type File struct {
	Users        []User                   `yaml:"users"`
	Transactions map[string][]Transaction `yaml:"transactions"`
	Goals        map[string][]Goal        `yaml:"goals"`
}

// Demo returns the embedded demo seed.
func Demo() (*File, error) {
	return Parse(demoSeed)
}

// Load reads a seed file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("seed user %d needs an email and a password", i)
		}
	}
	return &f, nil
}

// RawTransactions converts the records of one user for the normalizer.
func (f *File) RawTransactions(userID string) []transaction.RawTransaction {
	records := f.Transactions[userID]
	raws := make([]transaction.RawTransaction, 0, len(records))
	for _, r := range records {
		raws = append(raws, transaction.RawTransaction{
			ID:         r.ID,
			Name:       r.Name,
			CategoryID: r.CategoryID,
			Amount:     r.Amount,
			Date:       r.Date,
		})
	}
	return raws
}

// Report summarizes an applied seed.
type Report struct {
	UsersCreated         int
	UsersSkipped         int
	TransactionsImported int
	TransactionsRejected int
	GoalsCreated         int
}

// Seeder writes seed files through the application use cases.
type Seeder struct {
	Users     adapter.UserRepository
	Passwords adapter.PasswordService
	Import    *transaction.ImportTransactionsUseCase
	Goals     *goal.CreateGoalUseCase
}

// Apply stores the users, transactions and goals of f. Existing accounts are
// kept; transactions whose id already exists are skipped by the store.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Report, error) {
	report := &Report{}

	for _, u := range f.Users {
		created, err := s.createUser(ctx, u)
		if err != nil {
			return report, err
		}
		if created {
			report.UsersCreated++
		} else {
			report.UsersSkipped++
		}
	}

	for _, userID := range sortedKeys(f.Transactions) {
		output, err := s.Import.Execute(ctx, transaction.ImportTransactionsInput{
			UserID:       userID,
			Transactions: f.RawTransactions(userID),
		})
		if err != nil {
			return report, fmt.Errorf("failed to import transactions for %s: %w", userID, err)
		}
		report.TransactionsImported += len(output.Imported)
		report.TransactionsRejected += len(output.Rejected)
	}

	for _, userID := range sortedKeys(f.Goals) {
		for _, g := range f.Goals[userID] {
			if _, err := s.Goals.Execute(ctx, goal.CreateGoalInput{
				UserID:  userID,
				Title:   g.Title,
				Current: g.Current,
				Target:  g.Target,
				Unit:    g.Unit,
			}); err != nil {
				return report, fmt.Errorf("failed to create goal %q for %s: %w", g.Title, userID, err)
			}
			report.GoalsCreated++
		}
	}

	slog.Info("seed applied",
		"users_created", report.UsersCreated,
		"transactions_imported", report.TransactionsImported,
		"transactions_rejected", report.TransactionsRejected,
		"goals_created", report.GoalsCreated,
	)
	return report, nil
}

func (s *Seeder) createUser(ctx context.Context, u User) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))

	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerror.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up %s: %w", email, err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := s.Passwords.HashPassword(u.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password for %s: %w", email, err)
	}

	id := u.ID
	if id == "" {
		id = uuid.NewString()
	}
	displayName := u.DisplayName
	if displayName == "" {
		displayName = id
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           id,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return false, fmt.Errorf("failed to insert %s: %w", email, err)
	}
	return true, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
