// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an email address is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	// Lookups are performed against the normalized (lowercased) email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	// Returns ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// List retrieves all users ordered by creation time.
	List(ctx context.Context) ([]*entity.User, error)

	// CreateCustomFields persists the custom registration field values
	// captured for a user during sign-up.
	CreateCustomFields(ctx context.Context, fields []*entity.UserCustomField) error

	// FindCustomFieldsByUserID retrieves all custom field values for a user.
	FindCustomFieldsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.UserCustomField, error)
}
