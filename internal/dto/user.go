package dto

import (
	"time"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithTokenDTO represents a user plus a freshly issued bearer token
type UserWithTokenDTO struct {
	UserDTO
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserWithTokenDTO converts a User model and token to UserWithTokenDTO
func ToUserWithTokenDTO(user models.User, accessToken string, expiresIn time.Duration) UserWithTokenDTO {
	return UserWithTokenDTO{
		UserDTO:     ToUserDTO(user),
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(expiresIn.Seconds()),
	}
}
