package usecase

import "context"

// BootstrapUsecase defines startup-time provisioning operations.
type BootstrapUsecase interface {
	// EnsureAdmin seeds the configured administrator account.
	// A missing admin configuration is a silent no-op so plain
	// deployments need no extra setup.
	EnsureAdmin(ctx context.Context) error
}
