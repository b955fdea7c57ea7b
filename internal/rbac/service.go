package rbac

import (
	"context"
	"errors"
	"strings"
)

// Service orchestrates role and permission management.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole fetches a role by id.
func (s *Service) GetRole(ctx context.Context, id int64) (Role, error) {
	return s.repo.GetRole(ctx, id)
}

// CreateRole inserts a new role.
func (s *Service) CreateRole(ctx context.Context, name, description string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, errors.New("rbac: role name required")
	}
	return s.repo.CreateRole(ctx, name, strings.TrimSpace(description))
}

// UpdateRole updates an existing role.
func (s *Service) UpdateRole(ctx context.Context, id int64, name, description string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, errors.New("rbac: role name required")
	}
	return s.repo.UpdateRole(ctx, id, name, strings.TrimSpace(description))
}

// DeleteRole removes a role. Deleting a role still referenced by users is
// a caller responsibility.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	return s.repo.DeleteRole(ctx, id)
}

// ListPermissions returns all permissions.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.repo.ListPermissions(ctx)
}

// CreatePermission inserts a new permission.
func (s *Service) CreatePermission(ctx context.Context, name, description string) (Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Permission{}, errors.New("rbac: permission name required")
	}
	return s.repo.CreatePermission(ctx, name, strings.TrimSpace(description))
}

// DeletePermission removes a permission.
func (s *Service) DeletePermission(ctx context.Context, id int64) error {
	return s.repo.DeletePermission(ctx, id)
}

// AssignPermissions grants the named permissions to a role. With replace
// set, existing grants are cleared first; otherwise grants are additive.
// Granting an already held permission is idempotent either way. Returns
// the role's resulting permission set.
func (s *Service) AssignPermissions(ctx context.Context, roleID int64, permissionNames []string, replace bool) ([]Permission, error) {
	if _, err := s.repo.GetRole(ctx, roleID); err != nil {
		return nil, err
	}
	perms, err := s.repo.PermissionsByNames(ctx, permissionNames)
	if err != nil {
		return nil, err
	}
	if replace {
		if err := s.repo.ClearRolePermissions(ctx, roleID); err != nil {
			return nil, err
		}
	}
	for _, perm := range perms {
		if err := s.repo.GrantPermission(ctx, roleID, perm.ID); err != nil {
			return nil, err
		}
	}
	return s.repo.RolePermissions(ctx, roleID)
}

// RolePermissions returns the permissions granted to a role.
func (s *Service) RolePermissions(ctx context.Context, roleID int64) ([]Permission, error) {
	if _, err := s.repo.GetRole(ctx, roleID); err != nil {
		return nil, err
	}
	return s.repo.RolePermissions(ctx, roleID)
}

// GrantedNames returns the deduplicated permission names reachable from a
// role. The guard calls this fresh on every request so grant and revoke
// changes take effect on the next call.
func (s *Service) GrantedNames(ctx context.Context, roleID int64) ([]string, error) {
	return s.repo.RolePermissionNames(ctx, roleID)
}
