package expenses

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
	Currency string
	From     *time.Time
	To       *time.Time
	Search   string
	Limit    int
	Offset   int
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Expense, error)
	Get(ctx context.Context, id int64) (Expense, error)
	Create(ctx context.Context, form ExpenseForm, expenseDate time.Time) (Expense, error)
	Update(ctx context.Context, id int64, form ExpenseForm, expenseDate time.Time) (Expense, error)
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

const expenseColumns = `id, user_id, beneficiary, description, amount, currency, expense_date, created_at, updated_at`

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Beneficiary, &e.Description, &e.Amount, &e.Currency,
		&e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, shared.ErrNotFound
		}
		return Expense{}, err
	}
	return e, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	var clauses []string
	var args []any
	if filters.Currency != "" {
		args = append(args, filters.Currency)
		clauses = append(clauses, "currency = $"+strconv.Itoa(len(args)))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		clauses = append(clauses, "expense_date >= $"+strconv.Itoa(len(args)))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		clauses = append(clauses, "expense_date < $"+strconv.Itoa(len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clauses = append(clauses, "beneficiary ILIKE $"+strconv.Itoa(len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY expense_date DESC"
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
	var expenses []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Expense, error) {
	return scanExpense(r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form ExpenseForm, expenseDate time.Time) (Expense, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (user_id, beneficiary, description, amount, currency, expense_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+expenseColumns,
		form.UserID, form.Beneficiary, form.Description, form.Amount, form.Currency, expenseDate)
	return scanExpense(row)
}

func (r *repository) Update(ctx context.Context, id int64, form ExpenseForm, expenseDate time.Time) (Expense, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE expenses SET user_id = $2, beneficiary = $3, description = $4, amount = $5,
			currency = $6, expense_date = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+expenseColumns,
		id, form.UserID, form.Beneficiary, form.Description, form.Amount, form.Currency, expenseDate)
	return scanExpense(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE currency = $1 AND expense_date >= $2 AND expense_date < $3`,
		currency, from, to).Scan(&total)
	return total, err
}

func (r *repository) TotalByMonth(ctx context.Context, currency string, since time.Time) ([]MonthTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', expense_date) AS month, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE currency = $1 AND expense_date >= $2
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
