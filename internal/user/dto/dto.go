package dto

import (
	"time"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	LastLogin string `json:"lastLogin"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MeRequest struct{}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse carries a localized message alongside the user.
type UserResponse struct {
	User    *User  `json:"user,omitempty"`
	Message string `json:"message"`
}

func FromModel(u *model.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		LastLogin: u.LastLogin.UTC().Format(time.RFC3339),
	}
}
