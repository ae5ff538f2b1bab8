package user

import (
	"time"

	"github.com/xiebiao/storefront/internal/domain/user"
)

// UserDTO 用户信息(不含密码)
type UserDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Role      string         `json:"role"`
	Addresses []user.Address `json:"addresses"`
	Profile   *user.Profile  `json:"profile,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToUserDTO 实体 → DTO
func ToUserDTO(u *user.User) *UserDTO {
	addresses := u.Addresses
	if addresses == nil {
		addresses = []user.Address{}
	}
	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Addresses: addresses,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
