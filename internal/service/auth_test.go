package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vidvault/backend/internal/config"
	"github.com/vidvault/backend/internal/model"
)

type fakeAuthRepo struct {
	mu      sync.Mutex
	users   map[string]*model.User
	revoked map[string]model.RevokedToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:   make(map[string]*model.User),
		revoked: make(map[string]model.RevokedToken),
	}
}

func (f *fakeAuthRepo) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[email] = user
	return user, nil
}

func (f *fakeAuthRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeAuthRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID == userID {
			return &model.UserProfile{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt}, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthRepo) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.revoked[jti]; ok {
		return false, nil
	}
	f.revoked[jti] = model.RevokedToken{JTI: jti, RevokedAt: time.Now(), ExpiresAt: expiresAt}
	return true, nil
}

func (f *fakeAuthRepo) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.revoked[jti]
	return ok, nil
}

func (f *fakeAuthRepo) DeleteExpiredRevocations(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	now := time.Now()
	for jti, entry := range f.revoked {
		if entry.ExpiresAt.Before(now) {
			delete(f.revoked, jti)
			n++
		}
	}
	return n, nil
}

const testSecret = "test-secret"

func newTestAuthService(t *testing.T) (*AuthService, *fakeAuthRepo) {
	t.Helper()
	repo := newFakeAuthRepo()
	svc, err := NewAuthService(repo, config.AuthConfig{
		JWTSecret:     testSecret,
		JWTTTLHours:   "24",
		SweepInterval: "1h",
	})
	if err != nil {
		t.Fatalf("NewAuthService error: %v", err)
	}
	return svc, repo
}

func TestNewAuthServiceConfigValidation(t *testing.T) {
	repo := newFakeAuthRepo()

	cases := []config.AuthConfig{
		{JWTSecret: "", JWTTTLHours: "24", SweepInterval: "1h"},
		{JWTSecret: "s", JWTTTLHours: "zero", SweepInterval: "1h"},
		{JWTSecret: "s", JWTTTLHours: "-1", SweepInterval: "1h"},
		{JWTSecret: "s", JWTTTLHours: "24", SweepInterval: "soon"},
	}
	for _, cfg := range cases {
		if _, err := NewAuthService(repo, cfg); !errors.Is(err, ErrMisconfigured) {
			t.Fatalf("config %+v: expected ErrMisconfigured, got %v", cfg, err)
		}
	}
}

func TestSignupThenLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	signupToken, err := svc.Signup(ctx, "Ada", "ADA@X.com", "password1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	loginToken, err := svc.Login(ctx, "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	u1, err := svc.VerifyToken(ctx, signupToken)
	if err != nil {
		t.Fatalf("verify signup token: %v", err)
	}
	u2, err := svc.VerifyToken(ctx, loginToken)
	if err != nil {
		t.Fatalf("verify login token: %v", err)
	}
	if u1.ID != u2.ID {
		t.Fatalf("tokens resolve to different users: %s vs %s", u1.ID, u2.ID)
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"", "a@b.com", "password1"},
		{"Ada", "", "password1"},
		{"Ada", "a@b.com", ""},
		{"Ada", "not-an-email", "password1"},
		{"Ada", "a@b", "password1"},
		{"Ada", "a b@x.com", "password1"},
		{"Ada", "a@b.com", "short"},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(ctx, tc.name, tc.email, tc.password); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("signup(%q,%q,%q): expected ErrInvalidInput, got %v", tc.name, tc.email, tc.password, err)
		}
	}
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Ada", "ADA@X.com", "password1"); err != nil {
		t.Fatalf("first signup error: %v", err)
	}
	if _, err := svc.Signup(ctx, "Bob", "ada@x.com", "password2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Signup(ctx, "Bob", "Ada@X.Com", "password2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for case variant, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Ada", "ada@x.com", "password1"); err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if _, err := svc.Login(ctx, "ada@x.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	// Unknown account yields the exact same error as a wrong password.
	if _, err := svc.Login(ctx, "nobody@x.com", "password1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown email: expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginMalformedStoredHash(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	repo.users["ada@x.com"] = &model.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "ada@x.com",
		PasswordHash: "not-a-bcrypt-hash",
	}

	if _, err := svc.Login(ctx, "ada@x.com", "password1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for corrupt hash, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Ada", "ada@x.com", "password1"); err != nil {
		t.Fatalf("signup error: %v", err)
	}

	svc.tokenTTL = -time.Second
	token, err := svc.Login(ctx, "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongSecretAndTampered(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	other, err := NewAuthService(newFakeAuthRepo(), config.AuthConfig{
		JWTSecret:     "another-secret",
		JWTTTLHours:   "24",
		SweepInterval: "1h",
	})
	if err != nil {
		t.Fatalf("NewAuthService error: %v", err)
	}
	foreign, err := other.Signup(ctx, "Eve", "eve@x.com", "password1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if _, err := svc.VerifyToken(ctx, foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong secret: expected ErrTokenInvalid, got %v", err)
	}

	token, err := svc.Signup(ctx, "Ada", "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	parts := strings.Split(token, ".")
	parts[1] = parts[1] + "dGFtcGVy"
	tampered := strings.Join(parts, ".")
	if _, err := svc.VerifyToken(ctx, tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("tampered claims: expected ErrTokenInvalid, got %v", err)
	}

	if _, err := svc.VerifyToken(ctx, "not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("malformed: expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyNonUUIDSubject(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for non-UUID subject, got %v", err)
	}
}

func TestVerifyMissingJTIFailsClosed(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked for missing jti, got %v", err)
	}
}

func TestLogoutRevokesSingleToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "Ada", "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	second, err := svc.Login(ctx, "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	if err := svc.Logout(ctx, first); err != nil {
		t.Fatalf("logout error: %v", err)
	}

	if _, err := svc.VerifyToken(ctx, first); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after logout, got %v", err)
	}

	// Revocation is per token, not per user.
	if _, err := svc.VerifyToken(ctx, second); err != nil {
		t.Fatalf("second token should still verify: %v", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Signup(ctx, "Ada", "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("first logout error: %v", err)
	}
	claims := &tokenClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	before := repo.revoked[claims.ID]

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("second logout error: %v", err)
	}
	after := repo.revoked[claims.ID]

	if !before.RevokedAt.Equal(after.RevokedAt) || !before.ExpiresAt.Equal(after.ExpiresAt) {
		t.Fatalf("second logout mutated the ledger entry")
	}
	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("token should remain revoked, got %v", err)
	}
}

func TestLogoutExpiredTokenAccepted(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Ada", "ada@x.com", "password1"); err != nil {
		t.Fatalf("signup error: %v", err)
	}
	svc.tokenTTL = -time.Second
	token, err := svc.Login(ctx, "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout of expired token should succeed: %v", err)
	}
}

func TestLogoutInvalidToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Logout(ctx, "garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	// Right structure, wrong secret.
	other, _ := NewAuthService(newFakeAuthRepo(), config.AuthConfig{
		JWTSecret:     "another-secret",
		JWTTTLHours:   "24",
		SweepInterval: "1h",
	})
	foreign, err := other.Signup(ctx, "Eve", "eve@x.com", "password1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if err := svc.Logout(ctx, foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Signup(ctx, "Ada", "ada@x.com", "password1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	user, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}

	profile, err := svc.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	if profile.Name != "Ada" || profile.Email != "ada@x.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := svc.Profile(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
