package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// dummyHash keeps Authenticate doing a bcrypt comparison even when the
// email is unknown, so both failure paths take comparable time.
var dummyHash = func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("mushkilty-dummy"), bcrypt.DefaultCost)
	return hash
}()

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials. Unknown email and
// wrong password both fail with ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new user with a bcrypt hash of the password. Fails
// with ErrInvalidRole when the role does not exist and ErrDuplicate when
// the email is taken.
func (s *Service) Register(ctx context.Context, email, name, password string, roleID int64) (*User, error) {
	exists, err := s.repo.RoleExists(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, email, name, string(hash), roleID)
}

// ChangePassword replaces the caller's password after verifying the
// current one. The old hash is irrecoverable afterwards.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return shared.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, userID, string(hash))
}
