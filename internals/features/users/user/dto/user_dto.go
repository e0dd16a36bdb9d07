package dto

import (
	"time"

	"biblioteka_backend/internals/features/users/user/model"
)

// ============================
// Response DTO
// ============================

type UserDTO struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================
// Request DTO
// ============================

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"omitempty,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// ============================
// Converter
// ============================

func ToUserDTO(m model.UserModel) UserDTO {
	dto := UserDTO{
		ID:        m.UserID,
		Username:  m.UserUsername,
		Role:      m.UserRole,
		Phone:     m.UserPhone,
		CreatedAt: m.UserCreatedAt,
	}
	if m.UserEmail != nil {
		dto.Email = *m.UserEmail
	}
	return dto
}
