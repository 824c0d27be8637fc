package service

import (
	"time"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenIssuer defines the interface for minting opaque session tokens.
// This abstracts token generation (randomness source, encoding, TTL) from the use cases.
type TokenIssuer interface {
	// Issue mints a new session token for the given user, with the value
	// and expiry populated. The caller is responsible for persisting it.
	Issue(userID uuid.UUID) (*entity.Token, error)

	// TTL returns the configured session token lifetime.
	TTL() time.Duration
}
