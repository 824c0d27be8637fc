// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// PasswordHash is empty for accounts created through an OAuth provider only;
// such accounts have no password login path until one is set explicitly.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, stored lowercase. Primary lookup key, globally unique.
	Name         string    // The user's display name.
	PasswordHash string    // bcrypt hash of the password. Empty means OAuth-only account.
	Role         string    // Free-form role tag, e.g. "user", "admin", "moderator". Defaults to RoleUser.
	CreatedAt    time.Time // Timestamp of when this account was created. Immutable after set.
}

// HasPassword reports whether the user can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// AuthID implements Authenticatable.
func (u *User) AuthID() uuid.UUID { return u.ID }

// AuthEmail implements Authenticatable.
func (u *User) AuthEmail() string { return u.Email }

// AuthName implements Authenticatable.
func (u *User) AuthName() string { return u.Name }

// AuthRole implements RoleAuthenticatable.
func (u *User) AuthRole() string { return u.Role }

// Authenticatable is the minimum capability set shared logic needs from a
// user-like type. Concrete user models beyond entity.User can plug into the
// token authenticator and role predicates by satisfying it.
type Authenticatable interface {
	AuthID() uuid.UUID
	AuthEmail() string
	AuthName() string
	HasPassword() bool
}

// RoleAuthenticatable extends Authenticatable with a single role tag used for
// authorization decisions.
type RoleAuthenticatable interface {
	Authenticatable
	AuthRole() string
}
