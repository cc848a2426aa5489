// Package auth implements credential checks and the DB-backed session
// lifecycle. A token is only as alive as its row in the logins table, so
// logout is immediate even while the JWT is still unexpired.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/internal/users"
	pkgAuth "github.com/malanad-agro/agrostore-backend/pkg/auth"
	"github.com/malanad-agro/agrostore-backend/pkg/config"
	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	pkgerrors "github.com/malanad-agro/agrostore-backend/pkg/errors"
	"github.com/malanad-agro/agrostore-backend/pkg/security"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	HasActiveSession(ctx context.Context, tokenID string) (bool, error)
}

type service struct {
	repo users.Repository
	tx   txRunner
	jwt  config.JWTConfig
	now  func() time.Time
}

// NewService builds the auth service with the required dependencies.
func NewService(repo users.Repository, tx txRunner, jwt config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		jwt:  jwt,
		now:  time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByUserName(ctx, req.UserName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now().UTC()
	jti := uuid.NewString()

	token, err := pkgAuth.MintAccessToken(s.jwt, now, pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		UserName: user.UserName,
		Role:     user.Role,
		JTI:      jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	// One active session per account: a fresh login invalidates tokens
	// still floating around from earlier logins.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeactivateSessionsForUser(ctx, user.UserName); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate stale sessions")
		}
		session := &models.LoginSession{
			UserName:  user.UserName,
			TokenID:   jti,
			IsActive:  true,
			LastLogin: now,
		}
		if err := repo.CreateSession(ctx, session); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User: UserView{
			ID:       user.ID,
			UserName: user.UserName,
			Role:     user.Role,
		},
	}, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	// Accept a just-expired token; the point is to kill the session row.
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwt, token)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	if err := s.repo.DeactivateSession(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate session")
	}
	return nil
}

func (s *service) HasActiveSession(ctx context.Context, tokenID string) (bool, error) {
	return s.repo.HasActiveSession(ctx, tokenID)
}
