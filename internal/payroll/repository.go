package payroll

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type ListFilters struct {
	UserID int64
	Unpaid bool
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Payroll, error)
	Get(ctx context.Context, id int64) (Payroll, error)
	Create(ctx context.Context, form PayrollForm) (Payroll, error)
	Update(ctx context.Context, id int64, form PayrollForm) (Payroll, error)
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) (Payroll, error)
	Delete(ctx context.Context, id int64) error
	TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error)
	TotalByMonth(ctx context.Context, currency string, since time.Time) ([]MonthTotal, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const payrollColumns = `id, user_id, amount, currency, period_start, period_end, paid_at, note, created_at, updated_at`

func scanPayroll(row pgx.Row) (Payroll, error) {
	var p Payroll
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &p.PeriodStart, &p.PeriodEnd,
		&p.PaidAt, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payroll{}, shared.ErrNotFound
		}
		return Payroll{}, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Payroll, error) {
	query := `SELECT ` + payrollColumns + ` FROM payrolls`
	var clauses []string
	var args []any
	if filters.UserID > 0 {
		args = append(args, filters.UserID)
		clauses = append(clauses, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filters.Unpaid {
		clauses = append(clauses, "paid_at IS NULL")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY period_start DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payrolls []Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Payroll, error) {
	return scanPayroll(r.pool.QueryRow(ctx, `SELECT `+payrollColumns+` FROM payrolls WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form PayrollForm) (Payroll, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payrolls (user_id, amount, currency, period_start, period_end, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+payrollColumns,
		form.UserID, form.Amount, form.Currency, form.PeriodStart, form.PeriodEnd, form.Note)
	return scanPayroll(row)
}

func (r *repository) Update(ctx context.Context, id int64, form PayrollForm) (Payroll, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE payrolls SET user_id = $2, amount = $3, currency = $4, period_start = $5,
			period_end = $6, note = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+payrollColumns,
		id, form.UserID, form.Amount, form.Currency, form.PeriodStart, form.PeriodEnd, form.Note)
	return scanPayroll(row)
}

func (r *repository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) (Payroll, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE payrolls SET paid_at = $2, updated_at = NOW()
		WHERE id = $1 AND paid_at IS NULL
		RETURNING `+payrollColumns, id, paidAt)
	return scanPayroll(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalByDateRange sums paid payrolls whose paid_at falls in [from, to).
func (r *repository) TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM payrolls
		WHERE currency = $1 AND paid_at IS NOT NULL AND paid_at >= $2 AND paid_at < $3`,
		currency, from, to).Scan(&total)
	return total, err
}

func (r *repository) TotalByMonth(ctx context.Context, currency string, since time.Time) ([]MonthTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', paid_at) AS month, COALESCE(SUM(amount), 0)
		FROM payrolls
		WHERE currency = $1 AND paid_at IS NOT NULL AND paid_at >= $2
		GROUP BY month
		ORDER BY month`, currency, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var totals []MonthTotal
	for rows.Next() {
		var t MonthTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
