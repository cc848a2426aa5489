package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/malanad-agro/agrostore-backend/internal/users"
	pkgAuth "github.com/malanad-agro/agrostore-backend/pkg/auth"
	"github.com/malanad-agro/agrostore-backend/pkg/config"
	"github.com/malanad-agro/agrostore-backend/pkg/db/models"
	"github.com/malanad-agro/agrostore-backend/pkg/enums"
	pkgerrors "github.com/malanad-agro/agrostore-backend/pkg/errors"
	"github.com/malanad-agro/agrostore-backend/pkg/security"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "agrostore", ExpirationMinutes: 30}

var testPassword = config.PasswordConfig{
	ArgonMemoryKB:    32768,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func newTestUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		UserName:     "clerk",
		PasswordHash: hash,
		Role:         enums.RoleStaff,
	}
}

func TestLoginSuccessCreatesSession(t *testing.T) {
	user := newTestUser(t, "orchard-gate-42")
	repo := &stubUserRepo{user: user, sessions: map[string]bool{}}
	svc, err := NewService(repo, passthroughTx{}, testJWT)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{UserName: "clerk", Password: "orchard-gate-42"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.UserName != "clerk" || resp.User.Role != enums.RoleStaff {
		t.Fatalf("unexpected user view: %+v", resp.User)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.Token)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if !repo.sessions[claims.ID] {
		t.Fatal("expected an active session row for the minted jti")
	}

	ok, err := svc.HasActiveSession(context.Background(), claims.ID)
	if err != nil || !ok {
		t.Fatalf("expected active session, got ok=%v err=%v", ok, err)
	}
}

func TestLoginInvalidatesEarlierSessions(t *testing.T) {
	user := newTestUser(t, "orchard-gate-42")
	repo := &stubUserRepo{user: user, sessions: map[string]bool{"old-jti": true}}
	svc, _ := NewService(repo, passthroughTx{}, testJWT)

	if _, err := svc.Login(context.Background(), LoginRequest{UserName: "clerk", Password: "orchard-gate-42"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if repo.sessions["old-jti"] {
		t.Fatal("expected earlier session to be deactivated")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := newTestUser(t, "orchard-gate-42")
	repo := &stubUserRepo{user: user, sessions: map[string]bool{}}
	svc, _ := NewService(repo, passthroughTx{}, testJWT)

	_, err := svc.Login(context.Background(), LoginRequest{UserName: "clerk", Password: "wrong"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
	if len(repo.sessions) != 0 {
		t.Fatal("no session should be created on failed login")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &stubUserRepo{sessions: map[string]bool{}}
	svc, _ := NewService(repo, passthroughTx{}, testJWT)

	_, err := svc.Login(context.Background(), LoginRequest{UserName: "ghost", Password: "whatever-123"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogoutDeactivatesSession(t *testing.T) {
	user := newTestUser(t, "orchard-gate-42")
	repo := &stubUserRepo{user: user, sessions: map[string]bool{}}
	svc, _ := NewService(repo, passthroughTx{}, testJWT)

	resp, err := svc.Login(context.Background(), LoginRequest{UserName: "clerk", Password: "orchard-gate-42"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	claims, _ := pkgAuth.ParseAccessToken(testJWT, resp.Token)
	ok, err := svc.HasActiveSession(context.Background(), claims.ID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("session should be inactive after logout")
	}
}

func TestLogoutAcceptsExpiredToken(t *testing.T) {
	user := newTestUser(t, "orchard-gate-42")
	repo := &stubUserRepo{user: user, sessions: map[string]bool{}}
	svc := &service{repo: repo, tx: passthroughTx{}, jwt: testJWT, now: func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}}

	resp, err := svc.Login(context.Background(), LoginRequest{UserName: "clerk", Password: "orchard-gate-42"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("logout with expired token: %v", err)
	}
}

func TestLogoutRejectsGarbageToken(t *testing.T) {
	repo := &stubUserRepo{sessions: map[string]bool{}}
	svc, _ := NewService(repo, passthroughTx{}, testJWT)
	assertCode(t, svc.Logout(context.Background(), "not-a-token"), pkgerrors.CodeUnauthorized)
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepo struct {
	user     *models.User
	sessions map[string]bool
}

func (s *stubUserRepo) WithTx(tx *gorm.DB) users.Repository { return s }

func (s *stubUserRepo) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	if s.user == nil || s.user.UserName != userName {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.user = user
	return user, nil
}

func (s *stubUserRepo) CreateSession(ctx context.Context, session *models.LoginSession) error {
	s.sessions[session.TokenID] = session.IsActive
	return nil
}

func (s *stubUserRepo) DeactivateSession(ctx context.Context, tokenID string) error {
	if _, ok := s.sessions[tokenID]; ok {
		s.sessions[tokenID] = false
	}
	return nil
}

func (s *stubUserRepo) DeactivateSessionsForUser(ctx context.Context, userName string) error {
	for k := range s.sessions {
		s.sessions[k] = false
	}
	return nil
}

func (s *stubUserRepo) HasActiveSession(ctx context.Context, tokenID string) (bool, error) {
	return s.sessions[tokenID], nil
}
