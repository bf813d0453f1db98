// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// UserRepository defines the interface for demo account persistence.
type UserRepository interface {
	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Insert stores a new user. It fails with ErrEmailAlreadyExists on duplicates.
	Insert(ctx context.Context, user *entity.User) error
}
