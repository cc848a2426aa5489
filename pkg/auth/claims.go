package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// AccessTokenPayload carries the identity fields minted into a token.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	UserName string
	Role     enums.Role
	// JTI lets callers pin the token id so the session row and the token
	// agree. Empty means mint a fresh one.
	JTI string
}

// AccessTokenClaims is the JWT claim set used across the API.
type AccessTokenClaims struct {
	UserID   uuid.UUID  `json:"uid"`
	UserName string     `json:"user_name"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
