package model

import (
	"time"

	"github.com/google/uuid"
)

// Package represents a purchasable bundle of learning hours. Packages are
// soft-deleted (deactivated) so students assigned while active keep a
// resolvable reference.
type Package struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Hours       int       `json:"hours"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePackageRequest is the payload for creating or updating a package.
type CreatePackageRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Hours       int      `json:"hours" binding:"required,min=1,max=999"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
}
