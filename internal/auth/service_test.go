package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	pkgauth "github.com/jwsummers/Canopy-Chronicles/pkg/auth"
	"github.com/jwsummers/Canopy-Chronicles/pkg/auth/session"
	"github.com/jwsummers/Canopy-Chronicles/pkg/config"
	"github.com/jwsummers/Canopy-Chronicles/pkg/credstore"
	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

type fakeUserRepository struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User

	createFn         func(ctx context.Context, user *models.User) error
	touchLastLoginFn func(ctx context.Context, id uuid.UUID, at time.Time) error
	lastLoginTouched []uuid.UUID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (f *fakeUserRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepository) EmailByID(ctx context.Context, id uuid.UUID) (string, error) {
	user, ok := f.byID[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return user.Email, nil
}

func (f *fakeUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.lastLoginTouched = append(f.lastLoginTouched, id)
	if f.touchLastLoginFn != nil {
		return f.touchLastLoginFn(ctx, id, at)
	}
	return nil
}

type fakeSessionManager struct {
	generated []string
	revoked   []string

	generateFn func(ctx context.Context, accessID string) (string, error)
	rotateFn   func(ctx context.Context, oldAccessID, provided string) (string, string, error)
	revokeFn   func(ctx context.Context, accessID string) error
}

func (f *fakeSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	f.generated = append(f.generated, accessID)
	if f.generateFn != nil {
		return f.generateFn(ctx, accessID)
	}
	return "refresh-" + accessID, nil
}

func (f *fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateFn != nil {
		return f.rotateFn(ctx, oldAccessID, provided)
	}
	return "rotated-access-id", "rotated-refresh", nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	if f.revokeFn != nil {
		return f.revokeFn(ctx, accessID)
	}
	return nil
}

type fakeCredentialStore struct {
	saved   map[string]credstore.Credentials
	deleted []string

	saveFn func(ctx context.Context, userID string, creds credstore.Credentials, ttl time.Duration) error
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{saved: make(map[string]credstore.Credentials)}
}

func (f *fakeCredentialStore) Save(ctx context.Context, userID string, creds credstore.Credentials, ttl time.Duration) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, userID, creds, ttl)
	}
	f.saved[userID] = creds
	return nil
}

func (f *fakeCredentialStore) Delete(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "unit-test-secret",
		Issuer:                 "canopy-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

type authFixture struct {
	repo     *fakeUserRepository
	sessions *fakeSessionManager
	creds    *fakeCredentialStore
	service  Service
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		repo:     newFakeUserRepository(),
		sessions: &fakeSessionManager{},
		creds:    newFakeCredentialStore(),
	}
	svc, err := NewService(f.repo, f.sessions, f.creds, testJWTConfig(), testPasswordConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.service = svc
	return f
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	f := newAuthFixture(t)

	user, pair, err := f.service.Register(context.Background(), Credentials{
		Email:    "Grower@Example.com",
		Password: "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "grower@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "long-enough-secret" {
		t.Fatal("password must be stored hashed")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user = %s, want %s", claims.UserID, user.ID)
	}
	if len(f.sessions.generated) != 1 || f.sessions.generated[0] != claims.ID {
		t.Fatalf("refresh session should be keyed by the token jti, got %v", f.sessions.generated)
	}
	if creds, ok := f.creds.saved[user.ID.String()]; !ok || creds.Email != "grower@example.com" {
		t.Fatal("credentials should be mirrored to the store")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := newAuthFixture(t)
	creds := Credentials{Email: "grower@example.com", Password: "long-enough-secret"}

	if _, _, err := f.service.Register(context.Background(), creds); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, err := f.service.Register(context.Background(), creds)
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeConflict {
		t.Fatalf("code = %v, want conflict", code)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.service.Register(context.Background(), Credentials{Email: "not-an-email", Password: "long-enough-secret"})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("bad email code = %v, want validation", code)
	}

	_, _, err = f.service.Register(context.Background(), Credentials{Email: "grower@example.com", Password: "short"})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("short password code = %v, want validation", code)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	f := newAuthFixture(t)
	if _, _, err := f.service.Register(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "long-enough-secret",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, pair, err := f.service.Login(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if len(f.repo.lastLoginTouched) != 1 || f.repo.lastLoginTouched[0] != user.ID {
		t.Fatal("last login should be recorded")
	}

	_, _, err = f.service.Login(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "wrong-password-here",
	})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("wrong password code = %v, want unauthorized", code)
	}
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.service.Login(context.Background(), Credentials{
		Email:    "nobody@example.com",
		Password: "long-enough-secret",
	})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("code = %v, want unauthorized", code)
	}
}

func TestLoginSurvivesLastLoginWriteFailure(t *testing.T) {
	f := newAuthFixture(t)
	if _, _, err := f.service.Register(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "long-enough-secret",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	f.repo.touchLastLoginFn = func(ctx context.Context, id uuid.UUID, at time.Time) error {
		return errors.New("write timeout")
	}

	if _, _, err := f.service.Login(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "long-enough-secret",
	}); err != nil {
		t.Fatalf("Login should ignore last-login failures: %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	f := newAuthFixture(t)
	user, pair, err := f.service.Register(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	newPair, err := f.service.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if newPair.RefreshToken != "rotated-refresh" {
		t.Fatalf("refresh token = %q, want rotated value", newPair.RefreshToken)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), newPair.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != "rotated-access-id" {
		t.Fatalf("jti = %q, want the rotated access id", claims.ID)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user = %s, want %s", claims.UserID, user.ID)
	}
}

func TestRefreshRejectsBadRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	_, pair, err := f.service.Register(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	f.sessions.rotateFn = func(ctx context.Context, oldAccessID, provided string) (string, string, error) {
		return "", "", session.ErrInvalidRefreshToken
	}

	_, err = f.service.Refresh(context.Background(), pair.AccessToken, "forged")
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("code = %v, want unauthorized", code)
	}
}

func TestRefreshRejectsGarbageAccessToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Refresh(context.Background(), "not-a-jwt", "anything")
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("code = %v, want unauthorized", code)
	}
}

func TestLogoutRevokesSessionAndCredentials(t *testing.T) {
	f := newAuthFixture(t)
	user, pair, err := f.service.Register(context.Background(), Credentials{
		Email:    "grower@example.com",
		Password: "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := f.service.Logout(context.Background(), pair.AccessToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(f.sessions.revoked) != 1 {
		t.Fatalf("revoked = %v, want one entry", f.sessions.revoked)
	}
	if len(f.creds.deleted) != 1 || f.creds.deleted[0] != user.ID.String() {
		t.Fatal("stored credentials should be cleared")
	}
}
