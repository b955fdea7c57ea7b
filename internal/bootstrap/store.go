package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence surface the seeder needs. Inserts must be
// conflict-tolerant at the store level so concurrent seeding runs cannot
// produce duplicates.
type Store interface {
	EnsurePermission(ctx context.Context, name string) error
	EnsureRole(ctx context.Context, name, description string) error
	RoleIDByName(ctx context.Context, name string) (int64, error)
	GrantPermissionByName(ctx context.Context, roleID int64, permissionName string) error
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) error
}

// TxRunner executes a seeding pass against a transactional Store.
type TxRunner interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

// PGStore runs the seeding statements against PostgreSQL within a single
// transaction.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewStore constructs a PGStore.
func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// InTx wraps fn in one transaction; any failure rolls the whole run back.
func (s *PGStore) InTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(txStore{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type txStore struct {
	tx pgx.Tx
}

func (s txStore) EnsurePermission(ctx context.Context, name string) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO permissions (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING`, name)
	return err
}

func (s txStore) EnsureRole(ctx context.Context, name, description string) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO roles (name, description, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (name) DO NOTHING`, name, description)
	return err
}

func (s txStore) RoleIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.tx.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("bootstrap: role %q missing after seeding", name)
	}
	return id, err
}

func (s txStore) GrantPermissionByName(ctx context.Context, roleID int64, permissionName string) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT $1, id FROM permissions WHERE name = $2
		ON CONFLICT (role_id, permission_id) DO NOTHING`, roleID, permissionName)
	return err
}

func (s txStore) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (s txStore) CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) error {
	_, err := s.tx.Exec(ctx, `
		INSERT INTO users (email, name, password_hash, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`, email, name, passwordHash, roleID)
	return err
}
