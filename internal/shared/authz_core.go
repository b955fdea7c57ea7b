package shared

// Core platform permissions.
const (
	PermUsersRead   = "users:read"
	PermUsersCreate = "users:create"
	PermUsersUpdate = "users:update"
	PermUsersDelete = "users:delete"

	PermRolesRead   = "roles:read"
	PermRolesCreate = "roles:create"
	PermRolesUpdate = "roles:update"
	PermRolesDelete = "roles:delete"

	PermPermissionsRead   = "permissions:read"
	PermPermissionsCreate = "permissions:create"
	PermPermissionsUpdate = "permissions:update"
	PermPermissionsDelete = "permissions:delete"
)

// CoreScopes lists all permissions related to the core platform.
func CoreScopes() []string {
	return []string{
		PermUsersRead,
		PermUsersCreate,
		PermUsersUpdate,
		PermUsersDelete,
		PermRolesRead,
		PermRolesCreate,
		PermRolesUpdate,
		PermRolesDelete,
		PermPermissionsRead,
		PermPermissionsCreate,
		PermPermissionsUpdate,
		PermPermissionsDelete,
	}
}

// PermissionCatalog returns every permission known to the system. The
// bootstrap seeder and the per-route requirement declarations both draw
// from this single registry.
func PermissionCatalog() []string {
	var catalog []string
	catalog = append(catalog, CoreScopes()...)
	catalog = append(catalog, AcademyScopes()...)
	catalog = append(catalog, FinanceScopes()...)
	return catalog
}
