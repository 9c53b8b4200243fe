package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/neokart/neokart-backend/internal/users"
	pkgauth "github.com/neokart/neokart-backend/pkg/auth"
	"github.com/neokart/neokart-backend/pkg/auth/session"
	"github.com/neokart/neokart-backend/pkg/config"
	"github.com/neokart/neokart-backend/pkg/db/models"
	"github.com/neokart/neokart-backend/pkg/enums"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
	"github.com/neokart/neokart-backend/pkg/security"

	"github.com/google/uuid"
)

// SessionManager issues, rotates and revokes refresh sessions keyed by
// the access token's jti.
type SessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    *string
}

// LoginInput carries the credentials of a login request.
type LoginInput struct {
	Email    string
	Password string
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	Users    *users.Repository
	Sessions SessionManager
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Now      func() time.Time
}

// Service exposes account registration and the token lifecycle.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*PayloadDTO, error)
	Login(ctx context.Context, input LoginInput) (*PayloadDTO, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPairDTO, error)
	Logout(ctx context.Context, accessToken string) error
}

type service struct {
	users    *users.Repository
	sessions SessionManager
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.JWT.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt config is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:    params.Users,
		sessions: params.Sessions,
		jwt:      params.JWT,
		password: params.Password,
		now:      now,
	}, nil
}

// Register creates an account and signs the shopper in immediately.
func (s *service) Register(ctx context.Context, input RegisterInput) (*PayloadDTO, error) {
	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        users.NormalizeEmail(input.Email),
		PasswordHash: hash,
		FullName:     input.FullName,
		Phone:        input.Phone,
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating user")
	}

	return s.issuePayload(ctx, user)
}

// Login verifies credentials and mints a fresh token pair.
func (s *service) Login(ctx context.Context, input LoginInput) (*PayloadDTO, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording login time")
	}

	return s.issuePayload(ctx, user)
}

// Refresh rotates the refresh session and mints a new access token for
// the same account. The provided access token may already be expired;
// only its signature must still check out.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPairDTO, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	newID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotating refresh session")
	}

	access, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Role:   claims.Role,
		JTI:    newID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPairDTO{AccessToken: access, RefreshToken: newRefresh}, nil
}

// Logout revokes the refresh session tied to the access token. An
// expired token is accepted so a shopper can always sign out.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking refresh session")
	}
	return nil
}

func (s *service) issuePayload(ctx context.Context, user *models.User) (*PayloadDTO, error) {
	accessID := session.NewAccessID()

	access, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating refresh session")
	}

	return &PayloadDTO{
		User:   toUserDTO(user),
		Tokens: TokenPairDTO{AccessToken: access, RefreshToken: refresh},
	}, nil
}
