package users

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// Service handles user management logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, email, name, password string, roleID *int64) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, shared.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return s.repo.Create(ctx, email, strings.TrimSpace(name), string(hash), roleID)
}

// Update changes name and role assignment.
func (s *Service) Update(ctx context.Context, id int64, name string, roleID *int64) (User, error) {
	return s.repo.Update(ctx, id, strings.TrimSpace(name), roleID)
}

// ResetPassword replaces a user's password without checking the old one.
// Intended for administrative resets; self-service goes through auth.
func (s *Service) ResetPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return shared.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, id, string(hash))
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
