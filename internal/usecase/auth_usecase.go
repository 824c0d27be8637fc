// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// CustomFields holds values for the admin-configured registration
	// fields, keyed by field name.
	CustomFields map[string]string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the session credential issued after a successful
// registration, login or OAuth sign-in.
type AuthOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// ProfileOutput returns the authenticated user together with the custom
// registration field values captured at sign-up.
type ProfileOutput struct {
	User         *entity.User
	CustomFields []*entity.UserCustomField
}

// AuthUsecase defines the interface for session and account operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a password account and opens its first session.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies email and password and opens a new session.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Authenticate resolves a presented bearer token to its user.
	// An expired token is removed on presentation and reported exactly
	// like an unknown one.
	Authenticate(ctx context.Context, tokenValue string) (*entity.User, error)

	// Logout ends every session the user holds.
	Logout(ctx context.Context, userID uuid.UUID) error

	// CurrentUser returns the authenticated user's profile.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)

	// ListProviders returns the OAuth provider links of a user.
	ListProviders(ctx context.Context, userID uuid.UUID) ([]*entity.OAuthLink, error)

	// ListUsers returns all accounts; reserved for administrators.
	ListUsers(ctx context.Context) ([]*ProfileOutput, error)
}
