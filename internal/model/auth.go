package model

import (
	"time"

	"github.com/google/uuid"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MeResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthUser is what the auth middleware hands to downstream handlers once a
// bearer token has been verified.
type AuthUser struct {
	ID  uuid.UUID
	JTI string
	Exp time.Time
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserProfile is the identity-read projection: it never carries the
// password hash.
type UserProfile struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

type RevokedToken struct {
	JTI       string
	RevokedAt time.Time
	ExpiresAt time.Time
}
