package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type stubRepo struct {
	usersByEmail map[string]*User
	usersByID    map[int64]*User
	roles        map[int64]bool
	nextID       int64
	updatedHash  string
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		usersByEmail: map[string]*User{},
		usersByID:    map[int64]*User{},
		roles:        map[int64]bool{},
		nextID:       1,
	}
}

func (s *stubRepo) addUser(email, password string, roleID *int64) *User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &User{ID: s.nextID, Email: email, Name: email, PasswordHash: string(hash), RoleID: roleID}
	s.nextID++
	s.usersByEmail[email] = user
	s.usersByID[user.ID] = user
	return user
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if user, ok := s.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	if user, ok := s.usersByID[id]; ok {
		return user, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) (*User, error) {
	if _, ok := s.usersByEmail[email]; ok {
		return nil, shared.ErrDuplicate
	}
	user := &User{ID: s.nextID, Email: email, Name: name, PasswordHash: passwordHash, RoleID: &roleID}
	s.nextID++
	s.usersByEmail[email] = user
	s.usersByID[user.ID] = user
	return user, nil
}

func (s *stubRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	user, ok := s.usersByID[id]
	if !ok {
		return shared.ErrNotFound
	}
	user.PasswordHash = passwordHash
	s.updatedHash = passwordHash
	return nil
}

func (s *stubRepo) RoleExists(ctx context.Context, roleID int64) (bool, error) {
	return s.roles[roleID], nil
}

func TestAuthenticate(t *testing.T) {
	repo := newStubRepo()
	repo.addUser("admin@test.local", "Secret1!", nil)
	service := NewService(repo)

	user, err := service.Authenticate(context.Background(), "admin@test.local", "Secret1!")
	require.NoError(t, err)
	assert.Equal(t, "admin@test.local", user.Email)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newStubRepo()
	repo.addUser("admin@test.local", "Secret1!", nil)
	service := NewService(repo)

	_, err := service.Authenticate(context.Background(), "admin@test.local", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	service := NewService(newStubRepo())

	_, err := service.Authenticate(context.Background(), "ghost@test.local", "whatever")
	// Unknown email and wrong password must be indistinguishable.
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	repo := newStubRepo()
	repo.roles[2] = true
	service := NewService(repo)

	user, err := service.Register(context.Background(), "new@test.local", "New User", "Pass123!", 2)
	require.NoError(t, err)
	require.NotNil(t, user.RoleID)
	assert.Equal(t, int64(2), *user.RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Pass123!")))
}

func TestRegisterUnknownRole(t *testing.T) {
	service := NewService(newStubRepo())

	_, err := service.Register(context.Background(), "new@test.local", "New User", "Pass123!", 99)
	assert.ErrorIs(t, err, shared.ErrInvalidRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	repo.roles[1] = true
	repo.addUser("taken@test.local", "Secret1!", nil)
	service := NewService(repo)

	_, err := service.Register(context.Background(), "taken@test.local", "Taken", "Pass123!", 1)
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestChangePassword(t *testing.T) {
	repo := newStubRepo()
	user := repo.addUser("admin@test.local", "OldPass1!", nil)
	service := NewService(repo)

	err := service.ChangePassword(context.Background(), user.ID, "OldPass1!", "NewPass1!")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.updatedHash), []byte("NewPass1!")))

	_, err = service.Authenticate(context.Background(), "admin@test.local", "NewPass1!")
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newStubRepo()
	user := repo.addUser("admin@test.local", "OldPass1!", nil)
	service := NewService(repo)

	err := service.ChangePassword(context.Background(), user.ID, "nope", "NewPass1!")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.Empty(t, repo.updatedHash)
}
