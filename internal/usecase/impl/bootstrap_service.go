package impl

import (
	"context"
	"log/slog"

	"authgate/config"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bootstrapService implements the BootstrapUsecase interface.
type bootstrapService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	admin     *config.AdminConfig
	logger    *slog.Logger
}

// BootstrapServiceParams holds dependencies for bootstrapService, injected by Fx.
type BootstrapServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewBootstrapService is the constructor for bootstrapService.
func NewBootstrapService(params BootstrapServiceParams) usecase.BootstrapUsecase {
	return &bootstrapService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		admin:     params.Config.Admin,
		logger:    params.Logger,
	}
}

// EnsureAdmin seeds the configured administrator account. Without admin
// credentials in the environment this does nothing, so plain deployments
// start with no privileged account at all.
func (srv *bootstrapService) EnsureAdmin(ctx context.Context) error {
	if srv.admin == nil || srv.admin.Email == "" || srv.admin.Password == "" {
		srv.logger.Debug("Admin bootstrap skipped, no credentials configured")

		return nil
	}

	email := normalizeEmail(srv.admin.Email)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		existing, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			if entity.IsAdmin(existing) {
				return nil
			}

			// The configured account exists but lost its role; restore it.
			existing.Role = entity.RoleAdmin
			if err := userRepo.Update(ctx, existing); err != nil {
				return domainerrors.ErrUserUpdateFailed.WrapMessage("restore admin role")
			}
			srv.logger.Info("Admin role restored", slog.Any("userID", existing.ID))

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up admin account")
		}

		hash, err := srv.hasher.Hash(srv.admin.Password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("hash admin password")
		}

		name := srv.admin.Name
		if name == "" {
			name = "Administrator"
		}

		admin := &entity.User{
			Email:        email,
			Name:         name,
			PasswordHash: hash,
			Role:         entity.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			// A parallel instance may have seeded it first.
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil
			}

			return errors.Wrap(err, "failed to create admin account")
		}

		srv.logger.Info("Admin account seeded", slog.Any("userID", admin.ID))

		return nil
	})
}
