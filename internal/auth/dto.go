package auth

import (
	"github.com/google/uuid"

	"github.com/neokart/neokart-backend/pkg/db/models"
	"github.com/neokart/neokart-backend/pkg/enums"
)

// UserDTO is the public view of an account returned after register/login.
type UserDTO struct {
	ID       uuid.UUID      `json:"id"`
	Email    string         `json:"email"`
	FullName string         `json:"full_name"`
	Phone    *string        `json:"phone,omitempty"`
	Role     enums.UserRole `json:"role"`
}

// TokenPairDTO carries the signed access token and its refresh token.
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PayloadDTO is the full auth response body.
type PayloadDTO struct {
	User   UserDTO      `json:"user"`
	Tokens TokenPairDTO `json:"tokens"`
}

func toUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Phone:    user.Phone,
		Role:     user.Role,
	}
}
