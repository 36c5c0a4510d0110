package auth

import "github.com/bodegadosparcas/bodega-backend/internal/users"

// SessionDTO is returned on login, register, and refresh.
type SessionDTO struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         users.UserDTO `json:"user"`
}

// RegisterInput holds the sign-up payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
}
