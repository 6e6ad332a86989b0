package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username  string `json:"username"   validate:"required,min=1,max=150"`
	Password  string `json:"password"   validate:"required,min=4"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=100"`
	IsAdmin   bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Username  string `json:"username"   validate:"required,min=1,max=150"`
	Password  string `json:"password"   validate:"omitempty,min=4"` // empty keeps the current one
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=100"`
	IsAdmin   bool   `json:"is_admin"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserResponse never carries the password digest.
type UserResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
