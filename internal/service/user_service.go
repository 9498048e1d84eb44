package service

import (
	"context"
	"errors"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserService handles staff account business logic.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetByID retrieves a user.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves all staff accounts.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// ListTeachers retrieves all teacher-role users.
func (s *UserService) ListTeachers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListTeachers(ctx)
}

// Create provisions a new staff account with a hashed password.
func (s *UserService) Create(ctx context.Context, user *model.User, password string) error {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Create(ctx, user)
}

// Update modifies a staff account; a non-empty password replaces the hash.
// Users are never hard-deleted so historical classes keep their teacher.
func (s *UserService) Update(ctx context.Context, user *model.User, password string) error {
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if password != "" {
		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
	}
	return nil
}
