package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is an administrative login.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	PassHash  string    `db:"pass_hash" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// JWTClaims carries the identity embedded in access tokens.
type JWTClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// LoginRequest is the credential payload for the admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse mirrors the legacy login contract.
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
