package discountcodes

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]DiscountCode, error)
	Get(ctx context.Context, id int64) (DiscountCode, error)
	GetByCode(ctx context.Context, code string) (DiscountCode, error)
	Create(ctx context.Context, form DiscountCodeForm) (DiscountCode, error)
	Update(ctx context.Context, id int64, form DiscountCodeForm) (DiscountCode, error)
	Delete(ctx context.Context, id int64) error
	IncrementUsage(ctx context.Context, id int64) error
	DecrementUsage(ctx context.Context, id int64) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const codeColumns = `id, code, user_id, name, purpose, amount, percent, usage_limit, used_count,
	valid_from, valid_to, active, created_at, updated_at`

func scanCode(row pgx.Row) (DiscountCode, error) {
	var d DiscountCode
	err := row.Scan(&d.ID, &d.Code, &d.UserID, &d.Name, &d.Purpose, &d.Amount, &d.Percent,
		&d.UsageLimit, &d.UsedCount, &d.ValidFrom, &d.ValidTo, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DiscountCode{}, shared.ErrNotFound
		}
		return DiscountCode{}, err
	}
	return d, nil
}

func (r *repository) List(ctx context.Context) ([]DiscountCode, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+codeColumns+` FROM discount_codes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []DiscountCode
	for rows.Next() {
		d, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, d)
	}
	return codes, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (DiscountCode, error) {
	return scanCode(r.pool.QueryRow(ctx, `SELECT `+codeColumns+` FROM discount_codes WHERE id = $1`, id))
}

func (r *repository) GetByCode(ctx context.Context, code string) (DiscountCode, error) {
	return scanCode(r.pool.QueryRow(ctx, `SELECT `+codeColumns+` FROM discount_codes WHERE code = $1`, code))
}

func (r *repository) Create(ctx context.Context, form DiscountCodeForm) (DiscountCode, error) {
	active := true
	if form.Active != nil {
		active = *form.Active
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO discount_codes (code, user_id, name, purpose, amount, percent, usage_limit,
			used_count, valid_from, valid_to, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, NOW(), NOW())
		RETURNING `+codeColumns,
		form.Code, form.UserID, form.Name, form.Purpose, form.Amount, form.Percent,
		form.UsageLimit, form.ValidFrom, form.ValidTo, active)
	d, err := scanCode(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return DiscountCode{}, shared.ErrDuplicate
		}
		return DiscountCode{}, err
	}
	return d, nil
}

func (r *repository) Update(ctx context.Context, id int64, form DiscountCodeForm) (DiscountCode, error) {
	active := true
	if form.Active != nil {
		active = *form.Active
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE discount_codes SET code = $2, user_id = $3, name = $4, purpose = $5, amount = $6,
			percent = $7, usage_limit = $8, valid_from = $9, valid_to = $10, active = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING `+codeColumns,
		id, form.Code, form.UserID, form.Name, form.Purpose, form.Amount, form.Percent,
		form.UsageLimit, form.ValidFrom, form.ValidTo, active)
	d, err := scanCode(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return DiscountCode{}, shared.ErrDuplicate
		}
		return DiscountCode{}, err
	}
	return d, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM discount_codes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) IncrementUsage(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE discount_codes SET used_count = used_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) DecrementUsage(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE discount_codes SET used_count = GREATEST(used_count - 1, 0), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeactivateExpired flips active off for codes whose valid_to has passed.
// Used by the background sweep.
func (r *repository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE discount_codes SET active = FALSE, updated_at = NOW()
		 WHERE active = TRUE AND valid_to IS NOT NULL AND valid_to < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
