// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for session token persistence.
var (
	// ErrTokenNotFound is returned when a session token is not found.
	ErrTokenNotFound = errors.New("session token not found")
)

// TokenRepository defines the interface for session token persistence.
// Tokens are opaque bearer credentials; expired rows are removed lazily
// when presented rather than by a background sweeper.
type TokenRepository interface {
	// Create persists a new session token.
	Create(ctx context.Context, token *entity.Token) error

	// FindByValue retrieves a session token by its opaque value.
	// Expiry is NOT checked here; callers decide what to do with stale rows.
	FindByValue(ctx context.Context, value string) (*entity.Token, error)

	// Delete removes a single session token by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID removes all session tokens for a user.
	// This powers logout, which ends every session the user holds.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
