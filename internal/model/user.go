package model

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's access level. The permission model is flat:
// admins may mutate everything, teachers only read their own schedule.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// User represents a staff account (admin or teacher). Users are never
// hard-deleted so historical classes keep a resolvable teacher.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    *string   `json:"avatar_url"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for provisioning a new staff account.
type CreateUserRequest struct {
	Email     string  `json:"email" binding:"required,email,max=100"`
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Role      Role    `json:"role" binding:"required,oneof=admin teacher"`
	Password  string  `json:"password" binding:"required,min=6,max=128"`
}

// UpdateUserRequest is the payload for updating an existing staff account.
// Password is optional; empty keeps the current hash.
type UpdateUserRequest struct {
	Email     string  `json:"email" binding:"required,email,max=100"`
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Role      Role    `json:"role" binding:"required,oneof=admin teacher"`
	Password  string  `json:"password" binding:"omitempty,min=6,max=128"`
}
