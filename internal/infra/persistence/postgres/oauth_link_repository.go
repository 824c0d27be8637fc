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

// oauthLinkRepository implements the domain.OAuthLinkRepository interface using GORM.
type oauthLinkRepository struct {
	db *gorm.DB
}

// NewOAuthLinkRepository is the constructor for oauthLinkRepository.
func NewOAuthLinkRepository(db *gorm.DB) repository.OAuthLinkRepository {
	return &oauthLinkRepository{db: db}
}

// FindByProviderUserID retrieves a link by provider name and provider user ID.
func (repo *oauthLinkRepository) FindByProviderUserID(ctx context.Context, provider, providerUserID string) (*entity.OAuthLink, error) {
	var linkM model.OAuthLinkModel
	if err := repo.db.WithContext(ctx).
		First(&linkM, "provider_name = ? AND provider_user_id = ?", provider, providerUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOAuthLinkNotFound
		}

		return nil, errors.Wrap(err, "failed to find oauth link")
	}

	return toOAuthLinkDomain(&linkM), nil
}

// FindByUserID retrieves all provider links for a local user.
func (repo *oauthLinkRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.OAuthLink, error) {
	var models []model.OAuthLinkModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("provider_name ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find oauth links by user")
	}

	links := make([]*entity.OAuthLink, 0, len(models))
	for i := range models {
		links = append(links, toOAuthLinkDomain(&models[i]))
	}

	return links, nil
}

// Create persists a new provider link.
func (repo *oauthLinkRepository) Create(ctx context.Context, link *entity.OAuthLink) error {
	linkM := fromOAuthLinkDomain(link)
	if linkM.ID == uuid.Nil {
		linkM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(linkM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOAuthLink
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("oauth link references missing user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create oauth link")
	}

	link.ID = linkM.ID
	link.CreatedAt = linkM.CreatedAt
	link.UpdatedAt = linkM.UpdatedAt

	return nil
}

// Update modifies an existing provider link.
func (repo *oauthLinkRepository) Update(ctx context.Context, link *entity.OAuthLink) error {
	linkM := fromOAuthLinkDomain(link)

	if err := repo.db.WithContext(ctx).Save(linkM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update oauth link")
	}

	link.UpdatedAt = linkM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toOAuthLinkDomain converts a GORM OAuthLinkModel to a domain OAuthLink entity.
func toOAuthLinkDomain(data *model.OAuthLinkModel) *entity.OAuthLink {
	if data == nil {
		return nil
	}

	return &entity.OAuthLink{
		ID:             data.ID,
		UserID:         data.UserID,
		ProviderName:   data.ProviderName,
		ProviderUserID: data.ProviderUserID,
		ProviderEmail:  data.ProviderEmail,
		AccessToken:    data.AccessToken,
		RefreshToken:   data.RefreshToken,
		TokenExpiresAt: data.TokenExpiresAt,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromOAuthLinkDomain converts a domain OAuthLink entity to a GORM OAuthLinkModel.
func fromOAuthLinkDomain(data *entity.OAuthLink) *model.OAuthLinkModel {
	if data == nil {
		return nil
	}

	return &model.OAuthLinkModel{
		ID:             data.ID,
		UserID:         data.UserID,
		ProviderName:   data.ProviderName,
		ProviderUserID: data.ProviderUserID,
		ProviderEmail:  data.ProviderEmail,
		AccessToken:    data.AccessToken,
		RefreshToken:   data.RefreshToken,
		TokenExpiresAt: data.TokenExpiresAt,
		CreatedAt:      data.CreatedAt,
	}
}
