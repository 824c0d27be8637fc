package usecase

import (
	"context"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

// FieldInput defines the data for creating or fully replacing a
// registration field.
type FieldInput struct {
	FieldName         string
	FieldLabel        string
	FieldType         string
	IsRequired        bool
	DisplayOrder      int
	IsActive          bool
	Placeholder       string
	HelpText          string
	ValidationPattern string
	Options           []string
}

// RegistrationFieldUsecase defines the interface for managing the
// admin-configurable registration form.
type RegistrationFieldUsecase interface {
	// ListPublic returns the active fields the registration form renders.
	ListPublic(ctx context.Context) ([]*entity.RegistrationField, error)

	// ListAll returns every field, active or not; reserved for administrators.
	ListAll(ctx context.Context) ([]*entity.RegistrationField, error)

	// Get returns a single registration field by ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.RegistrationField, error)

	// Create adds a new registration field.
	Create(ctx context.Context, input FieldInput) (*entity.RegistrationField, error)

	// Update replaces an existing registration field's definition.
	Update(ctx context.Context, id uuid.UUID, input FieldInput) (*entity.RegistrationField, error)

	// Delete removes a registration field.
	Delete(ctx context.Context, id uuid.UUID) error
}
