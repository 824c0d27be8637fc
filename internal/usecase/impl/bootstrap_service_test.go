package impl

import (
	"context"
	"testing"

	"authgate/config"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBootstrapService(store *fakeStore, admin *config.AdminConfig) usecase.BootstrapUsecase {
	return NewBootstrapService(BootstrapServiceParams{
		TxManager: store,
		Hasher:    fakeHasher{},
		Config:    &config.Config{Admin: admin},
		Logger:    discardLogger(),
	})
}

func TestBootstrapService_SkipsWithoutCredentials(t *testing.T) {
	store := newFakeStore()

	cases := []*config.AdminConfig{
		nil,
		{},
		{Email: "admin@example.com"},
		{Password: "secret"},
	}
	for _, admin := range cases {
		srv := newTestBootstrapService(store, admin)
		require.NoError(t, srv.EnsureAdmin(context.Background()))
	}

	assert.Empty(t, store.users)
}

func TestBootstrapService_SeedsAdmin(t *testing.T) {
	store := newFakeStore()
	srv := newTestBootstrapService(store, &config.AdminConfig{
		Email:    "Admin@Example.com",
		Password: "super-secret",
	})

	require.NoError(t, srv.EnsureAdmin(context.Background()))

	admin, err := store.NewUserRepository().FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrator", admin.Name)
	assert.True(t, admin.HasPassword())
}

func TestBootstrapService_Idempotent(t *testing.T) {
	store := newFakeStore()
	srv := newTestBootstrapService(store, &config.AdminConfig{
		Email:    "admin@example.com",
		Password: "super-secret",
	})

	require.NoError(t, srv.EnsureAdmin(context.Background()))
	require.NoError(t, srv.EnsureAdmin(context.Background()))

	assert.Len(t, store.users, 1)
}

func TestBootstrapService_RestoresRole(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	demoted := &entity.User{Email: "admin@example.com", PasswordHash: "hashed:pw", Role: entity.RoleUser}
	require.NoError(t, store.NewUserRepository().Create(ctx, demoted))

	srv := newTestBootstrapService(store, &config.AdminConfig{
		Email:    "admin@example.com",
		Password: "super-secret",
	})
	require.NoError(t, srv.EnsureAdmin(ctx))

	restored, err := store.NewUserRepository().FindByID(ctx, demoted.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, restored.Role)
	// The existing password is left alone
	assert.Equal(t, "hashed:pw", restored.PasswordHash)
}

func TestBootstrapService_RestoreFailureSurfaced(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	demoted := &entity.User{Email: "admin@example.com", PasswordHash: "hashed:pw", Role: entity.RoleUser}
	require.NoError(t, store.NewUserRepository().Create(ctx, demoted))
	store.beforeUpdateUser = func() error { return errors.New("write refused") }

	srv := newTestBootstrapService(store, &config.AdminConfig{
		Email:    "admin@example.com",
		Password: "super-secret",
	})

	err := srv.EnsureAdmin(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrUserUpdateFailed)
}
