package auth

import (
	"github.com/google/uuid"

	"github.com/malanad-agro/agrostore-backend/pkg/enums"
)

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserView is the public shape of a staff account.
type UserView struct {
	ID       uuid.UUID  `json:"id"`
	UserName string     `json:"userName"`
	Role     enums.Role `json:"role"`
}

// LoginResponse carries the minted token and the account it belongs to.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// VerifyResponse echoes the identity resolved from a valid session.
type VerifyResponse struct {
	UserName string `json:"userName"`
	Role     string `json:"role"`
}
