// Package bootstrap establishes the initial trust state: the permission
// catalog, baseline roles, the admin role's full grant and a default
// administrator account. Running it repeatedly is safe; it only adds what
// is missing and never revokes existing grants.
package bootstrap

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// AdminRoleName is the role receiving the full permission catalog.
const AdminRoleName = "admin"

// RoleSeed describes a baseline role.
type RoleSeed struct {
	Name        string
	Description string
}

// DefaultRoles returns the baseline role catalog.
func DefaultRoles() []RoleSeed {
	return []RoleSeed{
		{Name: AdminRoleName, Description: "Full access"},
		{Name: "accountant", Description: "Manage payments, refunds, expenses and payroll"},
		{Name: "approver", Description: "Approve enrollments and high-value payments"},
		{Name: "viewer", Description: "Read-only access"},
	}
}

// Summary reports the outcome of a seeding run.
type Summary struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Service runs the idempotent seeding algorithm.
type Service struct {
	runner        TxRunner
	adminEmail    string
	adminPassword string
}

// NewService constructs a Service. adminEmail/adminPassword designate the
// bootstrap administrator account created when no such user exists.
func NewService(runner TxRunner, adminEmail, adminPassword string) *Service {
	return &Service{runner: runner, adminEmail: adminEmail, adminPassword: adminPassword}
}

// Run seeds permissions, roles, the admin grant and the admin account in
// one transaction. Additive only: catalog entries never present are
// created, nothing existing is deleted.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	err := s.runner.InTx(ctx, func(store Store) error {
		for _, name := range shared.PermissionCatalog() {
			if err := store.EnsurePermission(ctx, name); err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
		}

		for _, role := range DefaultRoles() {
			if err := store.EnsureRole(ctx, role.Name, role.Description); err != nil {
				return fmt.Errorf("seed role %s: %w", role.Name, err)
			}
		}

		adminID, err := store.RoleIDByName(ctx, AdminRoleName)
		if err != nil {
			return err
		}
		for _, name := range shared.PermissionCatalog() {
			if err := store.GrantPermissionByName(ctx, adminID, name); err != nil {
				return fmt.Errorf("grant %s to admin: %w", name, err)
			}
		}

		exists, err := store.UserExistsByEmail(ctx, s.adminEmail)
		if err != nil {
			return err
		}
		if !exists {
			hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			if err := store.CreateUser(ctx, s.adminEmail, "Bootstrap Admin", string(hash), adminID); err != nil {
				return fmt.Errorf("create admin user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return Summary{OK: true, Message: "seeding complete"}, nil
}
