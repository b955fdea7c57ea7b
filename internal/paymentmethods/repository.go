package paymentmethods

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]PaymentMethod, error)
	Get(ctx context.Context, id int64) (PaymentMethod, error)
	Create(ctx context.Context, form PaymentMethodForm) (PaymentMethod, error)
	Update(ctx context.Context, id int64, form PaymentMethodForm) (PaymentMethod, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const methodColumns = `id, user_id, name, method_number, description, is_valid, created_at, updated_at`

func scanMethod(row pgx.Row) (PaymentMethod, error) {
	var m PaymentMethod
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.MethodNumber, &m.Description, &m.IsValid, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PaymentMethod{}, shared.ErrNotFound
		}
		return PaymentMethod{}, err
	}
	return m, nil
}

func (r *repository) List(ctx context.Context) ([]PaymentMethod, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+methodColumns+` FROM payment_methods ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var methods []PaymentMethod
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (PaymentMethod, error) {
	return scanMethod(r.pool.QueryRow(ctx, `SELECT `+methodColumns+` FROM payment_methods WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form PaymentMethodForm) (PaymentMethod, error) {
	isValid := true
	if form.IsValid != nil {
		isValid = *form.IsValid
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payment_methods (user_id, name, method_number, description, is_valid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING `+methodColumns,
		form.UserID, form.Name, form.MethodNumber, form.Description, isValid)
	return scanMethod(row)
}

func (r *repository) Update(ctx context.Context, id int64, form PaymentMethodForm) (PaymentMethod, error) {
	isValid := true
	if form.IsValid != nil {
		isValid = *form.IsValid
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE payment_methods SET user_id = $2, name = $3, method_number = $4, description = $5,
			is_valid = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING `+methodColumns,
		id, form.UserID, form.Name, form.MethodNumber, form.Description, isValid)
	return scanMethod(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
