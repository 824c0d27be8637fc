package impl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"authgate/internal/domain/entity"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// In-memory fakes for the repository and service contracts. The tests run
// the real business logic against these instead of a database.

type fakeStore struct {
	users        map[uuid.UUID]*entity.User
	tokens       map[string]*entity.Token
	links        map[string]*entity.OAuthLink
	fields       map[uuid.UUID]*entity.RegistrationField
	customFields []*entity.UserCustomField

	// beforeCreateUser lets a test inject races or failures.
	beforeCreateUser func() error
	beforeUpdateUser func() error
	beforeCreateLink func() error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[uuid.UUID]*entity.User),
		tokens: make(map[string]*entity.Token),
		links:  make(map[string]*entity.OAuthLink),
		fields: make(map[uuid.UUID]*entity.RegistrationField),
	}
}

func linkKey(provider, providerUserID string) string {
	return provider + "\x00" + providerUserID
}

// insertLink stores a link directly, bypassing the beforeCreateLink hook.
func (s *fakeStore) insertLink(link *entity.OAuthLink) {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	clone := *link
	s.links[linkKey(link.ProviderName, link.ProviderUserID)] = &clone
}

// Execute satisfies repository.TransactionManager. The fakes have no real
// transactions; the callback just runs against the shared store.
func (s *fakeStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *fakeStore) NewUserRepository() repository.UserRepository { return &fakeUserRepo{s} }
func (s *fakeStore) NewTokenRepository() repository.TokenRepository {
	return &fakeTokenRepo{s}
}
func (s *fakeStore) NewOAuthLinkRepository() repository.OAuthLinkRepository {
	return &fakeLinkRepo{s}
}
func (s *fakeStore) NewRegistrationFieldRepository() repository.RegistrationFieldRepository {
	return &fakeFieldRepo{s}
}

// --- user repository ---

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.s.users[id]; ok {
		clone := *user

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.s.beforeCreateUser != nil {
		if err := r.s.beforeCreateUser(); err != nil {
			return err
		}
	}
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	clone := *user
	r.s.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if r.s.beforeUpdateUser != nil {
		if err := r.s.beforeUpdateUser(); err != nil {
			return err
		}
	}
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.s.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		clone := *user
		users = append(users, &clone)
	}

	return users, nil
}

func (r *fakeUserRepo) CreateCustomFields(_ context.Context, fields []*entity.UserCustomField) error {
	for _, field := range fields {
		if field.ID == uuid.Nil {
			field.ID = uuid.New()
		}
		clone := *field
		r.s.customFields = append(r.s.customFields, &clone)
	}

	return nil
}

func (r *fakeUserRepo) FindCustomFieldsByUserID(_ context.Context, userID uuid.UUID) ([]*entity.UserCustomField, error) {
	var result []*entity.UserCustomField
	for _, field := range r.s.customFields {
		if field.UserID == userID {
			clone := *field
			result = append(result, &clone)
		}
	}

	return result, nil
}

// --- token repository ---

type fakeTokenRepo struct{ s *fakeStore }

func (r *fakeTokenRepo) Create(_ context.Context, token *entity.Token) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	clone := *token
	r.s.tokens[token.Value] = &clone

	return nil
}

func (r *fakeTokenRepo) FindByValue(_ context.Context, value string) (*entity.Token, error) {
	if token, ok := r.s.tokens[value]; ok {
		clone := *token

		return &clone, nil
	}

	return nil, repository.ErrTokenNotFound
}

func (r *fakeTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	for value, token := range r.s.tokens {
		if token.ID == id {
			delete(r.s.tokens, value)
		}
	}

	return nil
}

func (r *fakeTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for value, token := range r.s.tokens {
		if token.UserID == userID {
			delete(r.s.tokens, value)
		}
	}

	return nil
}

// --- oauth link repository ---

type fakeLinkRepo struct{ s *fakeStore }

func (r *fakeLinkRepo) FindByProviderUserID(_ context.Context, provider, providerUserID string) (*entity.OAuthLink, error) {
	if link, ok := r.s.links[linkKey(provider, providerUserID)]; ok {
		clone := *link

		return &clone, nil
	}

	return nil, repository.ErrOAuthLinkNotFound
}

func (r *fakeLinkRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.OAuthLink, error) {
	var result []*entity.OAuthLink
	for _, link := range r.s.links {
		if link.UserID == userID {
			clone := *link
			result = append(result, &clone)
		}
	}

	return result, nil
}

func (r *fakeLinkRepo) Create(_ context.Context, link *entity.OAuthLink) error {
	if r.s.beforeCreateLink != nil {
		if err := r.s.beforeCreateLink(); err != nil {
			return err
		}
	}
	key := linkKey(link.ProviderName, link.ProviderUserID)
	if _, ok := r.s.links[key]; ok {
		return repository.ErrDuplicateOAuthLink
	}

	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	clone := *link
	r.s.links[key] = &clone

	return nil
}

func (r *fakeLinkRepo) Update(_ context.Context, link *entity.OAuthLink) error {
	key := linkKey(link.ProviderName, link.ProviderUserID)
	if _, ok := r.s.links[key]; !ok {
		return repository.ErrOAuthLinkNotFound
	}
	clone := *link
	r.s.links[key] = &clone

	return nil
}

// --- registration field repository ---

type fakeFieldRepo struct{ s *fakeStore }

func (r *fakeFieldRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RegistrationField, error) {
	if field, ok := r.s.fields[id]; ok {
		clone := *field

		return &clone, nil
	}

	return nil, repository.ErrRegistrationFieldNotFound
}

func (r *fakeFieldRepo) FindByName(_ context.Context, fieldName string) (*entity.RegistrationField, error) {
	for _, field := range r.s.fields {
		if field.FieldName == fieldName {
			clone := *field

			return &clone, nil
		}
	}

	return nil, repository.ErrRegistrationFieldNotFound
}

func (r *fakeFieldRepo) ListActive(_ context.Context) ([]*entity.RegistrationField, error) {
	var result []*entity.RegistrationField
	for _, field := range r.s.fields {
		if field.IsActive {
			clone := *field
			result = append(result, &clone)
		}
	}

	return result, nil
}

func (r *fakeFieldRepo) ListAll(_ context.Context) ([]*entity.RegistrationField, error) {
	var result []*entity.RegistrationField
	for _, field := range r.s.fields {
		clone := *field
		result = append(result, &clone)
	}

	return result, nil
}

func (r *fakeFieldRepo) Create(_ context.Context, field *entity.RegistrationField) error {
	for _, existing := range r.s.fields {
		if existing.FieldName == field.FieldName {
			return repository.ErrDuplicateFieldName
		}
	}
	if field.ID == uuid.Nil {
		field.ID = uuid.New()
	}
	clone := *field
	r.s.fields[field.ID] = &clone

	return nil
}

func (r *fakeFieldRepo) Update(_ context.Context, field *entity.RegistrationField) error {
	if _, ok := r.s.fields[field.ID]; !ok {
		return repository.ErrRegistrationFieldNotFound
	}
	for _, existing := range r.s.fields {
		if existing.ID != field.ID && existing.FieldName == field.FieldName {
			return repository.ErrDuplicateFieldName
		}
	}
	clone := *field
	r.s.fields[field.ID] = &clone

	return nil
}

func (r *fakeFieldRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.fields[id]; !ok {
		return repository.ErrRegistrationFieldNotFound
	}
	delete(r.s.fields, id)

	return nil
}

// --- domain services ---

const fakeHashPrefix = "hashed:"

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return fakeHashPrefix + password, nil
}

func (fakeHasher) Check(password, hash string) (bool, error) {
	if !strings.HasPrefix(hash, fakeHashPrefix) {
		return false, service.ErrMalformedHash
	}

	return hash == fakeHashPrefix+password, nil
}

type fakeIssuer struct {
	counter int
	ttl     time.Duration
}

func (f *fakeIssuer) Issue(userID uuid.UUID) (*entity.Token, error) {
	f.counter++
	now := time.Now()

	return &entity.Token{
		ID:        uuid.New(),
		Value:     fmt.Sprintf("token-%d", f.counter),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(f.ttl),
	}, nil
}

func (f *fakeIssuer) TTL() time.Duration { return f.ttl }

type fakeProvider struct {
	exchangeErr  error
	fetchErr     error
	token        *service.ProviderToken
	user         *service.OAuthUser
	exchanged    []string
	authCodeURLs []string
}

func (f *fakeProvider) Name() string { return "google" }

func (f *fakeProvider) AuthCodeURL(state string) string {
	f.authCodeURLs = append(f.authCodeURLs, state)

	return "https://consent.example.com/?state=" + state
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*service.ProviderToken, error) {
	f.exchanged = append(f.exchanged, code)
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}

	return f.token, nil
}

func (f *fakeProvider) FetchUser(_ context.Context, _ string) (*service.OAuthUser, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	return f.user, nil
}

type fakeVerifier struct {
	user *service.OAuthUser
	err  error
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, _ string) (*service.OAuthUser, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.user, nil
}

var errFakeUpstream = errors.New("upstream unavailable")
