// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for OAuth link persistence.
var (
	// ErrOAuthLinkNotFound is returned when no link exists for a provider identity.
	ErrOAuthLinkNotFound = errors.New("oauth link not found")
	// ErrDuplicateOAuthLink is returned when a provider identity is already linked.
	ErrDuplicateOAuthLink = errors.New("provider identity already linked")
)

// OAuthLinkRepository defines the interface for OAuth provider link persistence.
// A link ties a local user account to one identity at an external provider.
type OAuthLinkRepository interface {
	// FindByProviderUserID retrieves a link by provider name and the
	// provider's stable user identifier.
	FindByProviderUserID(ctx context.Context, provider, providerUserID string) (*entity.OAuthLink, error)

	// FindByUserID retrieves all provider links for a local user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.OAuthLink, error)

	// Create persists a new provider link.
	// Returns ErrDuplicateOAuthLink when the provider identity is already linked.
	Create(ctx context.Context, link *entity.OAuthLink) error

	// Update modifies an existing provider link, typically to refresh
	// the stored provider tokens.
	Update(ctx context.Context, link *entity.OAuthLink) error
}
