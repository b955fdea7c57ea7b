package courses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id int64) (Course, error)
	Create(ctx context.Context, form CourseForm) (Course, error)
	Update(ctx context.Context, id int64, form CourseForm) (Course, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const courseColumns = `id, user_id, name, project_type, description, created_at, updated_at`

func scanCourse(row pgx.Row) (Course, error) {
	var c Course
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.ProjectType, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Course{}, shared.ErrNotFound
		}
		return Course{}, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form CourseForm) (Course, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (user_id, name, project_type, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING `+courseColumns,
		form.UserID, form.Name, form.ProjectType, form.Description)
	return scanCourse(row)
}

func (r *repository) Update(ctx context.Context, id int64, form CourseForm) (Course, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE courses SET user_id = $2, name = $3, project_type = $4, description = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+courseColumns,
		id, form.UserID, form.Name, form.ProjectType, form.Description)
	return scanCourse(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
