package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// fieldNamePattern constrains machine names to something that can be used
// as a form input name and a JSON key without escaping.
var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,99}$`)

// fieldService implements the RegistrationFieldUsecase interface.
type fieldService struct {
	fieldRepo repository.RegistrationFieldRepository
	logger    *slog.Logger
}

// FieldServiceParams holds dependencies for fieldService, injected by Fx.
type FieldServiceParams struct {
	fx.In

	FieldRepo repository.RegistrationFieldRepository
	Logger    *slog.Logger
}

// NewFieldService is the constructor for fieldService.
func NewFieldService(params FieldServiceParams) usecase.RegistrationFieldUsecase {
	return &fieldService{
		fieldRepo: params.FieldRepo,
		logger:    params.Logger,
	}
}

func (srv *fieldService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPublic returns the active fields the registration form renders.
func (srv *fieldService) ListPublic(ctx context.Context) ([]*entity.RegistrationField, error) {
	return srv.fieldRepo.ListActive(ctx)
}

// ListAll returns every field, active or not.
func (srv *fieldService) ListAll(ctx context.Context) ([]*entity.RegistrationField, error) {
	return srv.fieldRepo.ListAll(ctx)
}

// Get returns a single registration field by ID.
func (srv *fieldService) Get(ctx context.Context, id uuid.UUID) (*entity.RegistrationField, error) {
	field, err := srv.fieldRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationFieldNotFound) {
			return nil, domainerrors.ErrFieldNotFound
		}

		return nil, err
	}

	return field, nil
}

// validateInput checks a field definition before it is persisted.
func validateInput(input *usecase.FieldInput) error {
	input.FieldName = strings.TrimSpace(input.FieldName)
	input.FieldLabel = strings.TrimSpace(input.FieldLabel)

	if !fieldNamePattern.MatchString(input.FieldName) {
		return domainerrors.ErrValidationFailed.WithDetails("field name must be snake_case and start with a letter")
	}
	if input.FieldLabel == "" {
		return domainerrors.ErrValidationFailed.WithDetails("field label is required")
	}
	if !entity.ValidFieldType(input.FieldType) {
		return domainerrors.ErrInvalidFieldType.WithDetails("unsupported type: " + input.FieldType)
	}
	if input.FieldType == entity.FieldTypeSelect && len(input.Options) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("select fields need at least one option")
	}
	if input.ValidationPattern != "" {
		if _, err := regexp.Compile(input.ValidationPattern); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("invalid validation pattern: " + err.Error())
		}
	}

	return nil
}

// Create adds a new registration field.
func (srv *fieldService) Create(ctx context.Context, input usecase.FieldInput) (*entity.RegistrationField, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	field := fieldFromInput(&input)
	if err := srv.fieldRepo.Create(ctx, field); err != nil {
		if errors.Is(err, repository.ErrDuplicateFieldName) {
			return nil, domainerrors.ErrFieldNameTaken
		}

		return nil, err
	}

	srv.log(ctx).Info("Registration field created",
		slog.Any("fieldID", field.ID), slog.String("fieldName", field.FieldName))

	return field, nil
}

// Update replaces an existing registration field's definition.
func (srv *fieldService) Update(ctx context.Context, id uuid.UUID, input usecase.FieldInput) (*entity.RegistrationField, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	existing, err := srv.fieldRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationFieldNotFound) {
			return nil, domainerrors.ErrFieldNotFound
		}

		return nil, err
	}

	updated := fieldFromInput(&input)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := srv.fieldRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrDuplicateFieldName) {
			return nil, domainerrors.ErrFieldNameTaken
		}

		return nil, err
	}

	return updated, nil
}

// Delete removes a registration field.
func (srv *fieldService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.fieldRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRegistrationFieldNotFound) {
			return domainerrors.ErrFieldNotFound
		}

		return err
	}

	srv.log(ctx).Info("Registration field deleted", slog.Any("fieldID", id))

	return nil
}

func fieldFromInput(input *usecase.FieldInput) *entity.RegistrationField {
	return &entity.RegistrationField{
		FieldName:         input.FieldName,
		FieldLabel:        input.FieldLabel,
		FieldType:         input.FieldType,
		IsRequired:        input.IsRequired,
		DisplayOrder:      input.DisplayOrder,
		IsActive:          input.IsActive,
		Placeholder:       input.Placeholder,
		HelpText:          input.HelpText,
		ValidationPattern: input.ValidationPattern,
		Options:           input.Options,
	}
}
