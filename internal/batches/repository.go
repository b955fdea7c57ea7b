package batches

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// ListFilters narrows the batch listing.
type ListFilters struct {
	CourseID int64
	Status   string
	Search   string
	Limit    int
	Offset   int
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Batch, error)
	Get(ctx context.Context, id int64) (Batch, error)
	Create(ctx context.Context, form BatchForm) (Batch, error)
	Update(ctx context.Context, id int64, form BatchForm) (Batch, error)
	UpdateStatus(ctx context.Context, id int64, status string) (Batch, error)
	Delete(ctx context.Context, id int64) error
	EnrolledCount(ctx context.Context, id int64) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const batchColumns = `id, course_id, trainer_id, name, description, level, location, start_date, end_date,
	schedule, capacity, status, actual_price, currency, created_at, updated_at`

func scanBatch(row pgx.Row) (Batch, error) {
	var b Batch
	err := row.Scan(&b.ID, &b.CourseID, &b.TrainerID, &b.Name, &b.Description, &b.Level, &b.Location,
		&b.StartDate, &b.EndDate, &b.Schedule, &b.Capacity, &b.Status, &b.ActualPrice, &b.Currency,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Batch{}, shared.ErrNotFound
		}
		return Batch{}, err
	}
	return b, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches`
	var clauses []string
	var args []any
	if filters.CourseID > 0 {
		args = append(args, filters.CourseID)
		clauses = append(clauses, "course_id = $"+strconv.Itoa(len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := strconv.Itoa(len(args))
		clauses = append(clauses, "(name ILIKE $"+n+" OR location ILIKE $"+n+")")
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
	var batches []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Batch, error) {
	return scanBatch(r.pool.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form BatchForm) (Batch, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO batches (course_id, trainer_id, name, description, level, location, start_date, end_date,
			schedule, capacity, status, actual_price, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING `+batchColumns,
		form.CourseID, form.TrainerID, form.Name, form.Description, form.Level, form.Location,
		form.StartDate, form.EndDate, form.Schedule, form.Capacity, form.Status, form.ActualPrice, form.Currency)
	return scanBatch(row)
}

func (r *repository) Update(ctx context.Context, id int64, form BatchForm) (Batch, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE batches SET course_id = $2, trainer_id = $3, name = $4, description = $5, level = $6,
			location = $7, start_date = $8, end_date = $9, schedule = $10, capacity = $11, status = $12,
			actual_price = $13, currency = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING `+batchColumns,
		id, form.CourseID, form.TrainerID, form.Name, form.Description, form.Level, form.Location,
		form.StartDate, form.EndDate, form.Schedule, form.Capacity, form.Status, form.ActualPrice, form.Currency)
	return scanBatch(row)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) (Batch, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE batches SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+batchColumns, id, status)
	return scanBatch(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) EnrolledCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE batch_id = $1 AND status = 'active'`, id).Scan(&count)
	return count, err
}
