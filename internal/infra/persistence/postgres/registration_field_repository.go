package postgres

import (
	"context"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// registrationFieldRepository implements the domain.RegistrationFieldRepository interface using GORM.
type registrationFieldRepository struct {
	db *gorm.DB
}

// NewRegistrationFieldRepository is the constructor for registrationFieldRepository.
func NewRegistrationFieldRepository(db *gorm.DB) repository.RegistrationFieldRepository {
	return &registrationFieldRepository{db: db}
}

// FindByID retrieves a registration field by its unique ID.
func (repo *registrationFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RegistrationField, error) {
	var fieldM model.RegistrationFieldModel
	if err := repo.db.WithContext(ctx).First(&fieldM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegistrationFieldNotFound
		}

		return nil, errors.Wrap(err, "failed to find registration field by id")
	}

	return toRegistrationFieldDomain(&fieldM), nil
}

// FindByName retrieves a registration field by its machine name.
func (repo *registrationFieldRepository) FindByName(ctx context.Context, fieldName string) (*entity.RegistrationField, error) {
	var fieldM model.RegistrationFieldModel
	if err := repo.db.WithContext(ctx).First(&fieldM, "field_name = ?", fieldName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegistrationFieldNotFound
		}

		return nil, errors.Wrap(err, "failed to find registration field by name")
	}

	return toRegistrationFieldDomain(&fieldM), nil
}

// ListActive retrieves active fields ordered by display order.
func (repo *registrationFieldRepository) ListActive(ctx context.Context) ([]*entity.RegistrationField, error) {
	return repo.list(ctx, repo.db.WithContext(ctx).Where("is_active = ?", true))
}

// ListAll retrieves every field ordered by display order.
func (repo *registrationFieldRepository) ListAll(ctx context.Context) ([]*entity.RegistrationField, error) {
	return repo.list(ctx, repo.db.WithContext(ctx))
}

func (repo *registrationFieldRepository) list(_ context.Context, tx *gorm.DB) ([]*entity.RegistrationField, error) {
	var models []model.RegistrationFieldModel
	if err := tx.Order("display_order ASC, field_name ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list registration fields")
	}

	fields := make([]*entity.RegistrationField, 0, len(models))
	for i := range models {
		fields = append(fields, toRegistrationFieldDomain(&models[i]))
	}

	return fields, nil
}

// Create persists a new registration field.
func (repo *registrationFieldRepository) Create(ctx context.Context, field *entity.RegistrationField) error {
	fieldM := fromRegistrationFieldDomain(field)
	if fieldM.ID == uuid.Nil {
		fieldM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(fieldM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateFieldName
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create registration field")
	}

	field.ID = fieldM.ID
	field.CreatedAt = fieldM.CreatedAt
	field.UpdatedAt = fieldM.UpdatedAt

	return nil
}

// Update modifies an existing registration field.
func (repo *registrationFieldRepository) Update(ctx context.Context, field *entity.RegistrationField) error {
	fieldM := fromRegistrationFieldDomain(field)

	if err := repo.db.WithContext(ctx).Save(fieldM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateFieldName
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update registration field")
	}

	field.UpdatedAt = fieldM.UpdatedAt

	return nil
}

// Delete removes a registration field by its ID.
func (repo *registrationFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.RegistrationFieldModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete registration field")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRegistrationFieldNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toRegistrationFieldDomain converts a GORM RegistrationFieldModel to a domain entity.
func toRegistrationFieldDomain(data *model.RegistrationFieldModel) *entity.RegistrationField {
	if data == nil {
		return nil
	}

	return &entity.RegistrationField{
		ID:                data.ID,
		FieldName:         data.FieldName,
		FieldLabel:        data.FieldLabel,
		FieldType:         data.FieldType,
		IsRequired:        data.IsRequired,
		DisplayOrder:      data.DisplayOrder,
		IsActive:          data.IsActive,
		Placeholder:       data.Placeholder,
		HelpText:          data.HelpText,
		ValidationPattern: data.ValidationPattern,
		Options:           data.Options,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromRegistrationFieldDomain converts a domain entity to a GORM RegistrationFieldModel.
func fromRegistrationFieldDomain(data *entity.RegistrationField) *model.RegistrationFieldModel {
	if data == nil {
		return nil
	}

	return &model.RegistrationFieldModel{
		ID:                data.ID,
		FieldName:         data.FieldName,
		FieldLabel:        data.FieldLabel,
		FieldType:         data.FieldType,
		IsRequired:        data.IsRequired,
		DisplayOrder:      data.DisplayOrder,
		IsActive:          data.IsActive,
		Placeholder:       data.Placeholder,
		HelpText:          data.HelpText,
		ValidationPattern: data.ValidationPattern,
		Options:           data.Options,
		CreatedAt:         data.CreatedAt,
	}
}
