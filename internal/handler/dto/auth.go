// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/textshare/textshare/internal/model"

// SignupRequest represents the request body for POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// ConfirmPassword is optional; when present it must equal Password.
	ConfirmPassword *string `json:"confirm_password,omitempty"`
}

// LoginRequest represents the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToAuthResponse converts an issued token and its user to AuthResponse.
func ToAuthResponse(token string, user *model.User) *AuthResponse {
	return &AuthResponse{
		Token: token,
		User: UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	}
}
