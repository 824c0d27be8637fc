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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "id = ?", id).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their normalized email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)
	if userM.ID == uuid.Nil {
		userM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert database constraint errors to repository sentinels so
		// callers can distinguish a taken email from infrastructure failure.
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return nil
}

// List retrieves all users ordered by creation time.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// CreateCustomFields persists the custom registration field values for a user.
func (repo *userRepository) CreateCustomFields(ctx context.Context, fields []*entity.UserCustomField) error {
	if len(fields) == 0 {
		return nil
	}

	models := make([]model.UserCustomFieldModel, 0, len(fields))
	for _, field := range fields {
		id := field.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		models = append(models, model.UserCustomFieldModel{
			ID:         id,
			UserID:     field.UserID,
			FieldName:  field.FieldName,
			FieldValue: field.FieldValue,
		})
	}

	if err := repo.db.WithContext(ctx).Create(&models).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user custom fields")
	}

	for i := range fields {
		fields[i].ID = models[i].ID
		fields[i].CreatedAt = models[i].CreatedAt
		fields[i].UpdatedAt = models[i].UpdatedAt
	}

	return nil
}

// FindCustomFieldsByUserID retrieves all custom field values for a user.
func (repo *userRepository) FindCustomFieldsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.UserCustomField, error) {
	var models []model.UserCustomFieldModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("field_name ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find user custom fields")
	}

	fields := make([]*entity.UserCustomField, 0, len(models))
	for i := range models {
		fields = append(fields, toUserCustomFieldDomain(&models[i]))
	}

	return fields, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	var passwordHash string
	if data.PasswordHash != nil {
		passwordHash = *data.PasswordHash
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: passwordHash,
		Role:         data.Role,
		CreatedAt:    data.CreatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
// An empty password hash maps to NULL so the schema itself distinguishes
// password accounts from provider-only accounts.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	var passwordHash *string
	if data.PasswordHash != "" {
		hash := data.PasswordHash
		passwordHash = &hash
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: passwordHash,
		Role:         data.Role,
		CreatedAt:    data.CreatedAt,
	}
}

// toUserCustomFieldDomain converts a GORM UserCustomFieldModel to a domain entity.
func toUserCustomFieldDomain(data *model.UserCustomFieldModel) *entity.UserCustomField {
	if data == nil {
		return nil
	}

	return &entity.UserCustomField{
		ID:         data.ID,
		UserID:     data.UserID,
		FieldName:  data.FieldName,
		FieldValue: data.FieldValue,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
