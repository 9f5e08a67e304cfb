package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidvault/backend/internal/config"
	"github.com/vidvault/backend/internal/db"
	"github.com/vidvault/backend/internal/model"
)

const minPasswordLength = 8

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmailTaken    = errors.New("email already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrNotFound      = errors.New("not found")
	ErrMisconfigured = errors.New("auth config invalid")
)

// AuthRepository is the persistence surface the auth service needs: the
// credential store plus the revocation ledger.
type AuthRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpiredRevocations(ctx context.Context) (int64, error)
}

type AuthService struct {
	repo          AuthRepository
	jwtSecret     []byte
	tokenTTL      time.Duration
	sweepInterval time.Duration
}

type tokenClaims struct {
	jwt.RegisteredClaims
}

func NewAuthService(repo AuthRepository, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	ttlHours, err := strconv.Atoi(cfg.JWTTTLHours)
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_TTL_HOURS", ErrMisconfigured)
	}

	sweepInterval, err := time.ParseDuration(cfg.SweepInterval)
	if err != nil || sweepInterval <= 0 {
		return nil, fmt.Errorf("%w: invalid REVOKED_SWEEP_INTERVAL", ErrMisconfigured)
	}

	return &AuthService{
		repo:          repo,
		jwtSecret:     []byte(cfg.JWTSecret),
		tokenTTL:      time.Duration(ttlHours) * time.Hour,
		sweepInterval: sweepInterval,
	}, nil
}

// Signup validates input, hashes the password and creates the user. Email
// uniqueness is left to the store's unique index so two concurrent signups
// with the same address cannot both succeed.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return "", fmt.Errorf("%w: missing field: name", ErrInvalidInput)
	}
	if email == "" {
		return "", fmt.Errorf("%w: missing field: email", ErrInvalidInput)
	}
	if password == "" {
		return "", fmt.Errorf("%w: missing field: password", ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	// Checked before any hashing work.
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}

	user, err := s.repo.CreateUser(ctx, name, email, hash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return s.issueToken(user.ID)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	if email == "" {
		return "", fmt.Errorf("%w: missing field: email", ErrInvalidInput)
	}
	if password == "" {
		return "", fmt.Errorf("%w: missing field: password", ErrInvalidInput)
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			// Same error as a wrong password: no account enumeration.
			return "", ErrUnauthorized
		}
		return "", err
	}

	if !checkPassword(password, user.PasswordHash) {
		return "", ErrUnauthorized
	}

	return s.issueToken(user.ID)
}

// VerifyToken checks, in order: signature, expiry, revocation, subject
// validity. A token whose claims carry no jti is treated as revoked rather
// than trusted.
func (s *AuthService) VerifyToken(ctx context.Context, tokenStr string) (*model.AuthUser, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.ID == "" {
		return nil, ErrTokenRevoked
	}
	revoked, err := s.repo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &model.AuthUser{
		ID:  userID,
		JTI: claims.ID,
		Exp: claims.ExpiresAt.Time,
	}, nil
}

// Logout records the token's jti in the revocation ledger. The token must
// carry a valid signature and parsable jti/exp, but an already-expired
// token may still be logged out. Revoking the same token twice is a no-op.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return ErrTokenInvalid
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}

	_, err = s.repo.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time)
	return err
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	profile, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// issueToken mints a self-contained HS256 token. Nothing is persisted at
// issue time; the jti only matters once the token is revoked.
func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrTokenInvalid
	}
	return s.jwtSecret, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
