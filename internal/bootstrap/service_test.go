package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type fakeStore struct {
	permissions map[string]struct{}
	roles       map[string]int64
	grants      map[int64]map[string]struct{}
	users       map[string]fakeUser
	nextRoleID  int64
}

type fakeUser struct {
	name         string
	passwordHash string
	roleID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		permissions: map[string]struct{}{},
		roles:       map[string]int64{},
		grants:      map[int64]map[string]struct{}{},
		users:       map[string]fakeUser{},
		nextRoleID:  1,
	}
}

func (f *fakeStore) InTx(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakeStore) EnsurePermission(ctx context.Context, name string) error {
	f.permissions[name] = struct{}{}
	return nil
}

func (f *fakeStore) EnsureRole(ctx context.Context, name, description string) error {
	if _, ok := f.roles[name]; !ok {
		f.roles[name] = f.nextRoleID
		f.nextRoleID++
	}
	return nil
}

func (f *fakeStore) RoleIDByName(ctx context.Context, name string) (int64, error) {
	id, ok := f.roles[name]
	if !ok {
		return 0, shared.ErrNotFound
	}
	return id, nil
}

func (f *fakeStore) GrantPermissionByName(ctx context.Context, roleID int64, permissionName string) error {
	if f.grants[roleID] == nil {
		f.grants[roleID] = map[string]struct{}{}
	}
	f.grants[roleID][permissionName] = struct{}{}
	return nil
}

func (f *fakeStore) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) error {
	if _, ok := f.users[email]; !ok {
		f.users[email] = fakeUser{name: name, passwordHash: passwordHash, roleID: roleID}
	}
	return nil
}

func TestRunSeedsEverything(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, "admin@example.com", "Admin@123")

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.OK)

	catalog := shared.PermissionCatalog()
	assert.Len(t, store.permissions, len(catalog))

	for _, role := range DefaultRoles() {
		assert.Contains(t, store.roles, role.Name)
	}

	adminID := store.roles[AdminRoleName]
	assert.Len(t, store.grants[adminID], len(catalog))

	admin, ok := store.users["admin@example.com"]
	require.True(t, ok)
	assert.Equal(t, adminID, admin.roleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.passwordHash), []byte("Admin@123")))
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, "admin@example.com", "Admin@123")

	_, err := service.Run(context.Background())
	require.NoError(t, err)

	permCount := len(store.permissions)
	roleCount := len(store.roles)
	firstHash := store.users["admin@example.com"].passwordHash

	_, err = service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, permCount, len(store.permissions))
	assert.Equal(t, roleCount, len(store.roles))
	// The admin account is not recreated, so the hash stays put.
	assert.Equal(t, firstHash, store.users["admin@example.com"].passwordHash)
}

func TestRunKeepsExistingAdminPassword(t *testing.T) {
	store := newFakeStore()
	store.users["admin@example.com"] = fakeUser{name: "Existing Admin", passwordHash: "custom-hash"}
	service := NewService(store, "admin@example.com", "Admin@123")

	_, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "custom-hash", store.users["admin@example.com"].passwordHash)
}

func TestRunRestoresMissingGrant(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, "admin@example.com", "Admin@123")

	_, err := service.Run(context.Background())
	require.NoError(t, err)

	adminID := store.roles[AdminRoleName]
	delete(store.grants[adminID], shared.PermPaymentsRead)

	_, err = service.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, store.grants[adminID], shared.PermPaymentsRead)
}
