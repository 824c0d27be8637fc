package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"authgate/config"
	"authgate/internal/domain/entity"
	"authgate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// tokenEntropyBytes is the number of random bytes in a session token value.
// 24 bytes gives 192 bits of entropy, comfortably above the 128-bit floor
// for unguessable bearer credentials.
const tokenEntropyBytes = 24

// sessionTokenIssuer mints opaque session tokens backed by crypto/rand.
type sessionTokenIssuer struct {
	ttl time.Duration
}

// NewSessionTokenIssuer is the constructor for sessionTokenIssuer.
func NewSessionTokenIssuer(cfg *config.Config) service.TokenIssuer {
	return &sessionTokenIssuer{ttl: cfg.Auth.TokenTTL}
}

// Issue mints a new session token for the given user.
// The value is URL-safe so it can travel in headers and query strings untouched.
func (s *sessionTokenIssuer) Issue(userID uuid.UUID) (*entity.Token, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "read random bytes")
	}

	now := time.Now()

	return &entity.Token{
		ID:        uuid.New(),
		Value:     base64.RawURLEncoding.EncodeToString(buf),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}, nil
}

// TTL returns the configured session token lifetime.
func (s *sessionTokenIssuer) TTL() time.Duration {
	return s.ttl
}
