package refunds

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
	List(ctx context.Context) ([]Refund, error)
	Get(ctx context.Context, id int64) (Refund, error)
	Create(ctx context.Context, paymentID int64, reason string, refundedAt time.Time) (Refund, error)
	Delete(ctx context.Context, id int64) error
	PaymentExists(ctx context.Context, paymentID int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const refundColumns = `id, payment_id, reason, refunded_at, created_at, updated_at`

func scanRefund(row pgx.Row) (Refund, error) {
	var rf Refund
	err := row.Scan(&rf.ID, &rf.PaymentID, &rf.Reason, &rf.RefundedAt, &rf.CreatedAt, &rf.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Refund{}, shared.ErrNotFound
		}
		return Refund{}, err
	}
	return rf, nil
}

func (r *repository) List(ctx context.Context) ([]Refund, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+refundColumns+` FROM refunds ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var refunds []Refund
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, rf)
	}
	return refunds, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Refund, error) {
	return scanRefund(r.pool.QueryRow(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, paymentID int64, reason string, refundedAt time.Time) (Refund, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO refunds (payment_id, reason, refunded_at, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING `+refundColumns, paymentID, reason, refundedAt)
	rf, err := scanRefund(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Refund{}, shared.ErrDuplicate
		}
		return Refund{}, err
	}
	return rf, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refunds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) PaymentExists(ctx context.Context, paymentID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`, paymentID).Scan(&exists)
	return exists, err
}
