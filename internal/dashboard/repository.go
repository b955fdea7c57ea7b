package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthCount is an aggregate bucket for the enrollment chart.
type MonthCount struct {
	Month time.Time `json:"month"`
	Count int64     `json:"count"`
}

// Repository holds the count queries that belong to no single domain
// module.
type Repository interface {
	StudentCount(ctx context.Context) (int64, error)
	ActiveEnrollmentCount(ctx context.Context) (int64, error)
	OpenBatchCount(ctx context.Context) (int64, error)
	EnrollmentsByMonth(ctx context.Context, since time.Time) ([]MonthCount, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) StudentCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	return count, err
}

func (r *repository) ActiveEnrollmentCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE status IN ('accepted', 'active')`).Scan(&count)
	return count, err
}

func (r *repository) OpenBatchCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM batches WHERE status = 'open'`).Scan(&count)
	return count, err
}

func (r *repository) EnrollmentsByMonth(ctx context.Context, since time.Time) ([]MonthCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', enrolled_at) AS month, COUNT(*)
		FROM enrollments
		WHERE enrolled_at >= $1
		GROUP BY month
		ORDER BY month`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var counts []MonthCount
	for rows.Next() {
		var c MonthCount
		if err := rows.Scan(&c.Month, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
