package api

import (
	"time"

	domain "github.com/example/todo-backend/domain/task"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	Name        *string `json:"name,omitempty"`
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
}

// ProfileResponse is the current user's profile.
type ProfileResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          *string   `json:"name,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskBody is the client payload for creating a task. It carries no
// owner field: the owner is always the authenticated caller.
type CreateTaskBody struct {
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Priority    *domain.Priority `json:"priority,omitempty"`
	DueDate     *domain.Date     `json:"due_date,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
}

// UpdateTaskBody is the client payload for a partial task update. Absent
// fields leave the stored value untouched.
type UpdateTaskBody struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Priority    *domain.Priority `json:"priority,omitempty"`
	DueDate     *domain.Date     `json:"due_date,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
}
