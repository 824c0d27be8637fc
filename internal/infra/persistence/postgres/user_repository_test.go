package postgres

import (
	"context"
	"testing"

	"authgate/internal/domain/entity"
	"authgate/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredUser(t *testing.T, repo repository.UserRepository, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:        email,
		Name:         "Test Person",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         entity.RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEqual(t, uuid.Nil, user.ID)

	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	created := newStoredUser(t, repo, "person@example.com")

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)
	assert.Equal(t, created.Role, byID.Role)
	assert.True(t, byID.HasPassword())

	byEmail, err := repo.FindByEmail(ctx, "person@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepository_FindMissing(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	newStoredUser(t, repo, "person@example.com")

	dup := &entity.User{Email: "person@example.com", Name: "Other", Role: entity.RoleUser}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepository_PasswordlessAccountRoundTrip(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &entity.User{Email: "oauth@example.com", Name: "Provider Person", Role: entity.RoleUser}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, found.HasPassword())
	assert.Empty(t, found.PasswordHash)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newStoredUser(t, repo, "person@example.com")
	user.Name = "Renamed Person"
	user.Role = entity.RoleAdmin
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Person", found.Name)
	assert.Equal(t, entity.RoleAdmin, found.Role)
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	newStoredUser(t, repo, "a@example.com")
	newStoredUser(t, repo, "b@example.com")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_CustomFields(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newStoredUser(t, repo, "person@example.com")

	fields := []*entity.UserCustomField{
		{UserID: user.ID, FieldName: "company", FieldValue: "ACME"},
		{UserID: user.ID, FieldName: "phone", FieldValue: "555-0100"},
	}
	require.NoError(t, repo.CreateCustomFields(ctx, fields))

	stored, err := repo.FindCustomFieldsByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "company", stored[0].FieldName)
	assert.Equal(t, "ACME", stored[0].FieldValue)

	// Empty input is a no-op
	require.NoError(t, repo.CreateCustomFields(ctx, nil))
}
