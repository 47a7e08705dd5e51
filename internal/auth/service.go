package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/jwsummers/Canopy-Chronicles/pkg/auth"
	"github.com/jwsummers/Canopy-Chronicles/pkg/auth/session"
	"github.com/jwsummers/Canopy-Chronicles/pkg/config"
	"github.com/jwsummers/Canopy-Chronicles/pkg/credstore"
	pkgdb "github.com/jwsummers/Canopy-Chronicles/pkg/db"
	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
	"github.com/jwsummers/Canopy-Chronicles/pkg/security"
)

const minPasswordLen = 8

// sessionManager covers the refresh session operations the service needs.
type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// credentialStore persists the encrypted login credentials used for
// re-authentication flows.
type credentialStore interface {
	Save(ctx context.Context, userID string, creds credstore.Credentials, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

// Credentials are the raw email/password pair supplied by a client.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// TokenPair is the signed access token plus its refresh counterpart.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service defines account lifecycle operations.
type Service interface {
	Register(ctx context.Context, creds Credentials) (*models.User, *TokenPair, error)
	Login(ctx context.Context, creds Credentials) (*models.User, *TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

type service struct {
	repo     Repository
	sessions sessionManager
	creds    credentialStore
	jwt      config.JWTConfig
	password config.PasswordConfig
	logger   *logger.Logger
	now      func() time.Time
}

// NewService wires account dependencies.
func NewService(repo Repository, sessions sessionManager, creds credentialStore, jwt config.JWTConfig, password config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session manager required")
	}
	if creds == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "credential store required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		creds:    creds,
		jwt:      jwt,
		password: password,
		logger:   logg,
		now:      time.Now,
	}, nil
}

// Register creates the account and signs the caller in.
func (s *service) Register(ctx context.Context, creds Credentials) (*models.User, *TokenPair, error) {
	email, err := normalizeCredentials(&creds)
	if err != nil {
		return nil, nil, err
	}

	hash, err := security.HashPassword(creds.Password, s.password)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.saveCredentials(ctx, user.ID, email, creds.Password)
	s.logger.Info(s.logger.WithOwnerID(ctx, user.ID.String()), "account registered")
	return user, pair, nil
}

// Login verifies the password and issues a fresh token pair.
func (s *service) Login(ctx context.Context, creds Credentials) (*models.User, *TokenPair, error) {
	email, err := normalizeCredentials(&creds)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user == nil || !user.IsActive {
		return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	ok, err := security.VerifyPassword(creds.Password, user.PasswordHash)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.logger.Error(s.logger.WithOwnerID(ctx, user.ID.String()), "recording last login failed", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.saveCredentials(ctx, user.ID, email, creds.Password)
	return user, pair, nil
}

// Refresh rotates the refresh session and mints a new access token. The old
// access token may be expired; only its signature and jti matter here.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	signed, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{AccessToken: signed, RefreshToken: newRefresh}, nil
}

// Logout revokes the refresh session tied to the presented access token.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}

	if err := s.creds.Delete(ctx, claims.UserID.String()); err != nil {
		s.logger.Error(s.logger.WithOwnerID(ctx, claims.UserID.String()), "clearing stored credentials failed", err)
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessID := session.NewAccessID()
	signed, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create refresh session")
	}

	return &TokenPair{AccessToken: signed, RefreshToken: refresh}, nil
}

// saveCredentials mirrors the login secrets into the encrypted store. Failures
// are logged; sign-in does not depend on the mirror.
func (s *service) saveCredentials(ctx context.Context, userID uuid.UUID, email, password string) {
	err := s.creds.Save(ctx, userID.String(), credstore.Credentials{
		Email:    email,
		Password: password,
	}, s.jwt.RefreshTokenTTL())
	if err != nil {
		s.logger.Error(s.logger.WithOwnerID(ctx, userID.String()), "storing credentials failed", err)
	}
}

func normalizeCredentials(creds *Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a valid email address is required")
	}
	if len(creds.Password) < minPasswordLen {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	return email, nil
}
