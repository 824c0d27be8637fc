// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for registration field persistence.
var (
	// ErrRegistrationFieldNotFound is returned when a registration field is not found.
	ErrRegistrationFieldNotFound = errors.New("registration field not found")
	// ErrDuplicateFieldName is returned when a field name is already in use.
	ErrDuplicateFieldName = errors.New("field name already in use")
)

// RegistrationFieldRepository defines the interface for admin-configurable
// registration field persistence.
type RegistrationFieldRepository interface {
	// FindByID retrieves a registration field by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RegistrationField, error)

	// FindByName retrieves a registration field by its machine name.
	FindByName(ctx context.Context, fieldName string) (*entity.RegistrationField, error)

	// ListActive retrieves active fields ordered by display order.
	// This is what the public registration form renders.
	ListActive(ctx context.Context) ([]*entity.RegistrationField, error)

	// ListAll retrieves every field, active or not, ordered by display order.
	ListAll(ctx context.Context) ([]*entity.RegistrationField, error)

	// Create persists a new registration field.
	// Returns ErrDuplicateFieldName when the machine name is taken.
	Create(ctx context.Context, field *entity.RegistrationField) error

	// Update modifies an existing registration field.
	Update(ctx context.Context, field *entity.RegistrationField) error

	// Delete removes a registration field by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
