package payments

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
	EnrollmentID int64
	MethodID     int64
	Currency     string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// CreateParams carries the resolved insert payload, receipt number included.
type CreateParams struct {
	ReceiptNo       string
	PaymentMethodID int64
	UserID          int64
	EnrollmentID    *int64
	Payer           *string
	Note            string
	Amount          int64
	Currency        string
	Type            string
	PaidAt          time.Time
	PaymentProof    *string
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Payment, error)
	Get(ctx context.Context, id int64) (Payment, error)
	Create(ctx context.Context, params CreateParams) (Payment, error)
	Update(ctx context.Context, id int64, params CreateParams) (Payment, error)
	Delete(ctx context.Context, id int64) error
	TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error)
	TotalByMonth(ctx context.Context, currency string, since time.Time) ([]MonthTotal, error)
	Recent(ctx context.Context, limit int) ([]Payment, error)
	MethodDistribution(ctx context.Context, currency string) ([]MethodShare, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const paymentColumns = `p.id, p.receipt_no, p.payment_method_id, p.user_id, p.enrollment_id, p.payer,
	p.note, p.amount, p.currency, p.type, p.paid_at, p.payment_proof, r.refunded_at, p.created_at, p.updated_at`

const paymentFrom = ` FROM payments p LEFT JOIN refunds r ON r.payment_id = p.id`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.ReceiptNo, &p.PaymentMethodID, &p.UserID, &p.EnrollmentID, &p.Payer,
		&p.Note, &p.Amount, &p.Currency, &p.Type, &p.PaidAt, &p.PaymentProof, &p.RefundedAt,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, shared.ErrNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + paymentFrom
	var clauses []string
	var args []any
	if filters.EnrollmentID > 0 {
		args = append(args, filters.EnrollmentID)
		clauses = append(clauses, "p.enrollment_id = $"+strconv.Itoa(len(args)))
	}
	if filters.MethodID > 0 {
		args = append(args, filters.MethodID)
		clauses = append(clauses, "p.payment_method_id = $"+strconv.Itoa(len(args)))
	}
	if filters.Currency != "" {
		args = append(args, filters.Currency)
		clauses = append(clauses, "p.currency = $"+strconv.Itoa(len(args)))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		clauses = append(clauses, "p.paid_at >= $"+strconv.Itoa(len(args)))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		clauses = append(clauses, "p.paid_at < $"+strconv.Itoa(len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY p.paid_at DESC"
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
	var payments []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+paymentFrom+` WHERE p.id = $1`, id))
}

func (r *repository) Create(ctx context.Context, params CreateParams) (Payment, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payments (receipt_no, payment_method_id, user_id, enrollment_id, payer, note,
			amount, currency, type, paid_at, payment_proof, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id`,
		params.ReceiptNo, params.PaymentMethodID, params.UserID, params.EnrollmentID, params.Payer,
		params.Note, params.Amount, params.Currency, params.Type, params.PaidAt, params.PaymentProof).Scan(&id)
	if err != nil {
		return Payment{}, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, params CreateParams) (Payment, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments SET payment_method_id = $2, user_id = $3, enrollment_id = $4, payer = $5,
			note = $6, amount = $7, currency = $8, type = $9, paid_at = $10, payment_proof = $11,
			updated_at = NOW()
		WHERE id = $1`,
		id, params.PaymentMethodID, params.UserID, params.EnrollmentID, params.Payer, params.Note,
		params.Amount, params.Currency, params.Type, params.PaidAt, params.PaymentProof)
	if err != nil {
		return Payment{}, err
	}
	if tag.RowsAffected() == 0 {
		return Payment{}, shared.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalByDateRange sums non-refunded payments in [from, to).
func (r *repository) TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		LEFT JOIN refunds rf ON rf.payment_id = p.id
		WHERE rf.id IS NULL AND p.currency = $1 AND p.paid_at >= $2 AND p.paid_at < $3`,
		currency, from, to).Scan(&total)
	return total, err
}

// TotalByMonth buckets non-refunded payments by calendar month from the
// given lower bound.
func (r *repository) TotalByMonth(ctx context.Context, currency string, since time.Time) ([]MonthTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', p.paid_at) AS month, COALESCE(SUM(p.amount), 0)
		FROM payments p
		LEFT JOIN refunds rf ON rf.payment_id = p.id
		WHERE rf.id IS NULL AND p.currency = $1 AND p.paid_at >= $2
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

func (r *repository) Recent(ctx context.Context, limit int) ([]Payment, error) {
	return r.List(ctx, ListFilters{Limit: limit})
}

func (r *repository) MethodDistribution(ctx context.Context, currency string) ([]MethodShare, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.name, COUNT(p.id), COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN payment_methods m ON m.id = p.payment_method_id
		WHERE p.currency = $1
		GROUP BY m.name
		ORDER BY COUNT(p.id) DESC`, currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var shares []MethodShare
	for rows.Next() {
		var s MethodShare
		if err := rows.Scan(&s.MethodName, &s.Count, &s.Total); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}
