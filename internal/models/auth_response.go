package models

import "time"

// UserResponse represents a user's public fields. The password hash never
// crosses this boundary.
type UserResponse struct {
	UserID    string    `json:"user_id"` // UUID
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	AccessToken string `json:"access_token"` // JWT session token
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message     string       `json:"message"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}
