package enrollments

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
	StudentID int64
	BatchID   int64
	Status    string
	Limit     int
	Offset    int
}

// CreateParams is the resolved insert payload after discount and pricing
// decisions have been made by the service.
type CreateParams struct {
	StudentID      int64
	BatchID        int64
	DiscountCodeID *int64
	UserID         int64
	TotalPrice     int64
	Currency       string
	Status         string
	Notes          string
	EnrolledAt     time.Time
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Enrollment, error)
	Get(ctx context.Context, id int64) (Enrollment, error)
	Create(ctx context.Context, params CreateParams) (Enrollment, error)
	Update(ctx context.Context, id int64, params CreateParams) (Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (Enrollment, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const enrollmentColumns = `id, student_id, batch_id, discount_code_id, user_id, total_price, currency,
	enrolled_at, status, notes, created_at, updated_at`

func scanEnrollment(row pgx.Row) (Enrollment, error) {
	var e Enrollment
	err := row.Scan(&e.ID, &e.StudentID, &e.BatchID, &e.DiscountCodeID, &e.UserID, &e.TotalPrice,
		&e.Currency, &e.EnrolledAt, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Enrollment{}, shared.ErrNotFound
		}
		return Enrollment{}, err
	}
	return e, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments`
	var clauses []string
	var args []any
	if filters.StudentID > 0 {
		args = append(args, filters.StudentID)
		clauses = append(clauses, "student_id = $"+strconv.Itoa(len(args)))
	}
	if filters.BatchID > 0 {
		args = append(args, filters.BatchID)
		clauses = append(clauses, "batch_id = $"+strconv.Itoa(len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"
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
	var enrollments []Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Enrollment, error) {
	return scanEnrollment(r.pool.QueryRow(ctx, `SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, params CreateParams) (Enrollment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, batch_id, discount_code_id, user_id, total_price, currency,
			enrolled_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING `+enrollmentColumns,
		params.StudentID, params.BatchID, params.DiscountCodeID, params.UserID, params.TotalPrice,
		params.Currency, params.EnrolledAt, params.Status, params.Notes)
	return scanEnrollment(row)
}

func (r *repository) Update(ctx context.Context, id int64, params CreateParams) (Enrollment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE enrollments SET student_id = $2, batch_id = $3, discount_code_id = $4, user_id = $5,
			total_price = $6, currency = $7, status = $8, notes = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING `+enrollmentColumns,
		id, params.StudentID, params.BatchID, params.DiscountCodeID, params.UserID,
		params.TotalPrice, params.Currency, params.Status, params.Notes)
	return scanEnrollment(row)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) (Enrollment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE enrollments SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+enrollmentColumns, id, status)
	return scanEnrollment(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
