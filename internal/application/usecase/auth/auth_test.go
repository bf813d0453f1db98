package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

type fakeUserRepository struct {
	users     map[string]*entity.User
	insertErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepository) Insert(_ context.Context, user *entity.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.users[user.Email] = user
	return nil
}

// fakePasswordService stores passwords reversed.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	r := []rune(password)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return "hash:" + string(r), nil
}

func (s fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	want, _ := s.HashPassword(password)
	if want != hashedPassword {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(_ context.Context, userID, email string) (string, time.Time, error) {
	return "token-" + userID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (fakeTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func TestRegisterUserUseCase(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterUserInput
		wantErr error
	}{
		{"valid", RegisterUserInput{Email: " Ana@Example.com ", Password: "password123"}, nil},
		{"invalid email", RegisterUserInput{Email: "ana", Password: "password123"}, domainerror.ErrInvalidEmail},
		{"weak password", RegisterUserInput{Email: "ana@example.com", Password: "short"}, domainerror.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepository()
			uc := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

			out, err := uc.Execute(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out.User.Email != "ana@example.com" || out.User.DisplayName != "ana" {
				t.Errorf("User = %+v", out.User)
			}
			if !strings.HasPrefix(out.AccessToken, "token-") || out.User.PasswordHash == "password123" {
				t.Errorf("token %q hash %q", out.AccessToken, out.User.PasswordHash)
			}
		})
	}
}

func TestRegisterUserUseCase_Duplicate(t *testing.T) {
	repo := newFakeUserRepository()
	uc := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

	if _, err := uc.Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	_, err := uc.Execute(context.Background(), RegisterUserInput{Email: "ANA@example.com", Password: "password456"})
	if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
		t.Errorf("Execute() error = %v, want ErrEmailAlreadyExists", err)
	}

	racing := newFakeUserRepository()
	racing.insertErr = domainerror.ErrEmailAlreadyExists
	_, err = NewRegisterUserUseCase(racing, fakePasswordService{}, fakeTokenService{}).
		Execute(context.Background(), RegisterUserInput{Email: "bo@example.com", Password: "password123"})
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeEmailExists {
		t.Errorf("Execute() error = %v, want AUTH-010001", err)
	}
}

func TestLoginUserUseCase(t *testing.T) {
	repo := newFakeUserRepository()
	register := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})
	registered, err := register.Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", DisplayName: "Ana", Password: "password123"})
	if err != nil {
		t.Fatalf("register error = %v", err)
	}

	login := NewLoginUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "Ana@example.com", "password123", false},
		{"wrong password", "ana@example.com", "password124", true},
		{"unknown email", "bo@example.com", "password123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := login.Execute(context.Background(), LoginUserInput{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidCredentials) {
					t.Errorf("Execute() error = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out.User.ID != registered.User.ID || out.AccessToken != "token-"+registered.User.ID {
				t.Errorf("login output = %+v", out)
			}
		})
	}
}
