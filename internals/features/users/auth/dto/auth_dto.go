// internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "surfschool_backend/internals/features/users/model"
)

type RegisterRequest struct {
	UserName     string  `json:"user_name" validate:"required,min=3,max=120"`
	UserEmail    string  `json:"user_email" validate:"required,email,max=160"`
	UserPassword string  `json:"user_password" validate:"required,min=8,max=72"`
	UserRole     string  `json:"user_role" validate:"omitempty,oneof=SCHOOL_ADMIN INSTRUCTOR STUDENT"`
	UserAge      *int    `json:"user_age" validate:"omitempty,gte=5,lte=100"`
	UserCanSwim  *bool   `json:"user_can_swim"`
	UserPhone    *string `json:"user_phone" validate:"omitempty,max=30"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type AuthUserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
	UserAge       *int      `json:"user_age,omitempty"`
	UserCanSwim   bool      `json:"user_can_swim"`
	UserPhone     *string   `json:"user_phone,omitempty"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int64            `json:"expires_in"` // segundos
	User        AuthUserResponse `json:"user"`
}

func ToAuthUserResponse(m userModel.UserModel) AuthUserResponse {
	return AuthUserResponse{
		UserID:        m.UserID,
		UserName:      m.UserName,
		UserEmail:     m.UserEmail,
		UserRole:      m.UserRole,
		UserAge:       m.UserAge,
		UserCanSwim:   m.UserCanSwim,
		UserPhone:     m.UserPhone,
		UserCreatedAt: m.UserCreatedAt,
	}
}
