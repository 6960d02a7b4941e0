package dto

import "strings"

// RegisterRequest represents the request payload for user registration.
// An empty username defaults to the local part of the email.
type RegisterRequest struct {
	Username string `json:"username" validate:"omitempty,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Normalize trims whitespace and lowercases the email
func (r *RegisterRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.Username = strings.TrimSpace(r.Username)
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail is the canonical form emails are stored and looked up in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// TokenResponse carries a freshly signed access token
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"created_at"`
}

// UpdateUsernameRequest is the body of POST /userDashboard/update-username
type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
}

// UpdateUsernameResponse returns a token carrying the new username claim
type UpdateUsernameResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UpdatePasswordRequest is the body of POST /userDashboard/update-password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// ProtectedResponse is returned by the auth smoke-test endpoints
type ProtectedResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}
