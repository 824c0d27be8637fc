// Package entity contains the core business objects of the project.
package entity

import "slices"

// Well-known role tags. Role is deliberately an open string rather than a
// closed enum so that callers can define additional roles; every predicate
// below compares by exact, case-sensitive string equality with no hierarchy
// or inheritance between roles.
const (
	// RoleUser is the default role assigned to newly registered accounts.
	RoleUser = "user"
	// RoleAdmin grants access to admin-only routes.
	RoleAdmin = "admin"
)

// IsAdmin reports whether the user's role is exactly RoleAdmin.
func IsAdmin(user RoleAuthenticatable) bool {
	return user.AuthRole() == RoleAdmin
}

// HasRole reports whether the user's role is exactly the given role.
func HasRole(user RoleAuthenticatable, role string) bool {
	return user.AuthRole() == role
}

// HasAnyRole reports whether the user's role matches any of the given roles.
func HasAnyRole(user RoleAuthenticatable, roles ...string) bool {
	return slices.Contains(roles, user.AuthRole())
}
