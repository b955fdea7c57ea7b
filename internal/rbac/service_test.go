package rbac

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type mockRepo struct {
	roles       map[int64]Role
	permsByName map[string]Permission
	grants      map[int64]map[int64]struct{}
	nextPermID  int64
	grantCalls  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		roles:       map[int64]Role{},
		permsByName: map[string]Permission{},
		grants:      map[int64]map[int64]struct{}{},
		nextPermID:  1,
	}
}

func (m *mockRepo) addRole(id int64, name string) {
	m.roles[id] = Role{ID: id, Name: name}
}

func (m *mockRepo) addPermission(name string) Permission {
	perm := Permission{ID: m.nextPermID, Name: name}
	m.nextPermID++
	m.permsByName[name] = perm
	return perm
}

func (m *mockRepo) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	for _, role := range m.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

func (m *mockRepo) GetRole(ctx context.Context, id int64) (Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return role, nil
}

func (m *mockRepo) CreateRole(ctx context.Context, name, description string) (Role, error) {
	role := Role{ID: int64(len(m.roles) + 1), Name: name, Description: description}
	m.roles[role.ID] = role
	return role, nil
}

func (m *mockRepo) UpdateRole(ctx context.Context, id int64, name, description string) (Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	role.Name, role.Description = name, description
	m.roles[id] = role
	return role, nil
}

func (m *mockRepo) DeleteRole(ctx context.Context, id int64) error {
	if _, ok := m.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.roles, id)
	return nil
}

func (m *mockRepo) ListPermissions(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	for _, perm := range m.permsByName {
		perms = append(perms, perm)
	}
	return perms, nil
}

func (m *mockRepo) CreatePermission(ctx context.Context, name, description string) (Permission, error) {
	if _, ok := m.permsByName[name]; ok {
		return Permission{}, shared.ErrDuplicate
	}
	perm := m.addPermission(name)
	perm.Description = description
	m.permsByName[name] = perm
	return perm, nil
}

func (m *mockRepo) DeletePermission(ctx context.Context, id int64) error {
	for name, perm := range m.permsByName {
		if perm.ID == id {
			delete(m.permsByName, name)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (m *mockRepo) PermissionsByNames(ctx context.Context, names []string) ([]Permission, error) {
	var perms []Permission
	for _, name := range names {
		if perm, ok := m.permsByName[name]; ok {
			perms = append(perms, perm)
		}
	}
	return perms, nil
}

func (m *mockRepo) GrantPermission(ctx context.Context, roleID, permissionID int64) error {
	m.grantCalls++
	if m.grants[roleID] == nil {
		m.grants[roleID] = map[int64]struct{}{}
	}
	// Mirrors ON CONFLICT DO NOTHING on (role_id, permission_id).
	m.grants[roleID][permissionID] = struct{}{}
	return nil
}

func (m *mockRepo) ClearRolePermissions(ctx context.Context, roleID int64) error {
	delete(m.grants, roleID)
	return nil
}

func (m *mockRepo) RolePermissionNames(ctx context.Context, roleID int64) ([]string, error) {
	perms, err := m.RolePermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(perms))
	for _, perm := range perms {
		names = append(names, perm.Name)
	}
	return names, nil
}

func (m *mockRepo) RolePermissions(ctx context.Context, roleID int64) ([]Permission, error) {
	var perms []Permission
	for _, perm := range m.permsByName {
		if _, ok := m.grants[roleID][perm.ID]; ok {
			perms = append(perms, perm)
		}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].ID < perms[j].ID })
	return perms, nil
}

func TestAssignPermissionsAdditive(t *testing.T) {
	repo := newMockRepo()
	repo.addRole(1, "accountant")
	repo.addPermission("payments:read")
	repo.addPermission("payments:create")
	service := NewService(repo)

	perms, err := service.AssignPermissions(context.Background(), 1, []string{"payments:read"}, false)
	require.NoError(t, err)
	require.Len(t, perms, 1)

	perms, err = service.AssignPermissions(context.Background(), 1, []string{"payments:create"}, false)
	require.NoError(t, err)
	assert.Len(t, perms, 2)
}

func TestAssignPermissionsReplace(t *testing.T) {
	repo := newMockRepo()
	repo.addRole(1, "accountant")
	repo.addPermission("payments:read")
	repo.addPermission("expenses:read")
	service := NewService(repo)

	_, err := service.AssignPermissions(context.Background(), 1, []string{"payments:read"}, false)
	require.NoError(t, err)

	perms, err := service.AssignPermissions(context.Background(), 1, []string{"expenses:read"}, true)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "expenses:read", perms[0].Name)
}

func TestAssignPermissionsIdempotent(t *testing.T) {
	repo := newMockRepo()
	repo.addRole(1, "accountant")
	repo.addPermission("payments:read")
	service := NewService(repo)

	for i := 0; i < 3; i++ {
		perms, err := service.AssignPermissions(context.Background(), 1, []string{"payments:read"}, false)
		require.NoError(t, err)
		assert.Len(t, perms, 1)
	}
}

func TestAssignPermissionsUnknownRole(t *testing.T) {
	repo := newMockRepo()
	repo.addPermission("payments:read")
	service := NewService(repo)

	_, err := service.AssignPermissions(context.Background(), 9, []string{"payments:read"}, false)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAssignPermissionsSkipsUnknownNames(t *testing.T) {
	repo := newMockRepo()
	repo.addRole(1, "viewer")
	repo.addPermission("students:read")
	service := NewService(repo)

	perms, err := service.AssignPermissions(context.Background(), 1, []string{"students:read", "does:not-exist"}, false)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "students:read", perms[0].Name)
}

func TestGrantedNames(t *testing.T) {
	repo := newMockRepo()
	repo.addRole(1, "viewer")
	repo.addPermission("students:read")
	repo.addPermission("courses:read")
	service := NewService(repo)

	_, err := service.AssignPermissions(context.Background(), 1, []string{"students:read", "courses:read"}, false)
	require.NoError(t, err)

	names, err := service.GrantedNames(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"students:read", "courses:read"}, names)
}
