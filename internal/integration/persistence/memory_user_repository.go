// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"strings"
	"sync"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
)

// memoryUserRepository keeps demo accounts in process memory. Each instance is
// independent; nothing is shared between instances.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() adapter.UserRepository {
	return &memoryUserRepository{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
	}
}

// Insert stores a copy of user.
func (r *memoryUserRepository) Insert(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return domainerror.ErrEmailAlreadyExists
	}

	stored := *user
	r.byEmail[email] = &stored
	r.byID[user.ID] = &stored
	return nil
}

// FindByID retrieves a user by their ID.
func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// FindByEmail retrieves a user by their email address.
func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}
