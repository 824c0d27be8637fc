// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "github.com/pkg/errors"

// ErrMalformedHash is returned by Check when the stored hash is structurally
// invalid, as opposed to a plain mismatch. Callers should treat it as an
// internal error rather than a failed login.
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash.
	// A mismatch is (false, nil); ErrMalformedHash signals a corrupt stored hash.
	Check(password, hash string) (bool, error)
}
