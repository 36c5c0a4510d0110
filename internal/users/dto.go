package users

import (
	"time"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/google/uuid"
)

// UserDTO represents the account payload returned to clients. The password
// hash never leaves the service layer.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       *string        `json:"phone,omitempty"`
	Role        string         `json:"role"`
	IsBanned    bool           `json:"is_banned"`
	Address     *types.Address `json:"address,omitempty"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewUserDTO builds a DTO from the persisted model.
func NewUserDTO(user *models.User) *UserDTO {
	return &UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        string(user.Role),
		IsBanned:    user.IsBanned,
		Address:     user.Address,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// NewUserDTOs maps a slice of models preserving order.
func NewUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = *NewUserDTO(&users[i])
	}
	return dtos
}
