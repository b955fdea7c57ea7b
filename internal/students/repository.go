package students

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// ListFilters narrows the student listing.
type ListFilters struct {
	Status     string
	CourseType string
	Search     string
	Limit      int
	Offset     int
}

// Repository defines persistence operations for students.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Student, error)
	Get(ctx context.Context, id int64) (Student, error)
	Create(ctx context.Context, form StudentForm) (Student, error)
	Update(ctx context.Context, id int64, form StudentForm) (Student, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const studentColumns = `id, full_name, age, dob, education_level, gender, phone, city, area,
	course_type, previous_course, is_returning, status, created_at, updated_at`

func scanStudent(row pgx.Row) (Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.FullName, &s.Age, &s.DOB, &s.EducationLevel, &s.Gender, &s.Phone,
		&s.City, &s.Area, &s.CourseType, &s.PreviousCourse, &s.IsReturning, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Student{}, shared.ErrNotFound
		}
		return Student{}, err
	}
	return s, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Status != "" {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filters.Status)
	}
	if filters.CourseType != "" {
		argCount++
		query += ` AND course_type = $` + strconv.Itoa(argCount)
		args = append(args, filters.CourseType)
	}
	if filters.Search != "" {
		argCount++
		query += ` AND (full_name ILIKE $` + strconv.Itoa(argCount) + ` OR phone ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	query += ` ORDER BY created_at DESC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form StudentForm) (Student, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO students (full_name, age, dob, education_level, gender, phone, city, area,
			course_type, previous_course, is_returning, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING `+studentColumns,
		form.FullName, form.Age, form.DOB, form.EducationLevel, form.Gender, form.Phone,
		form.City, form.Area, form.CourseType, form.PreviousCourse, form.IsReturning, form.Status)
	return scanStudent(row)
}

func (r *repository) Update(ctx context.Context, id int64, form StudentForm) (Student, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE students SET full_name = $2, age = $3, dob = $4, education_level = $5, gender = $6,
			phone = $7, city = $8, area = $9, course_type = $10, previous_course = $11,
			is_returning = $12, status = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING `+studentColumns,
		id, form.FullName, form.Age, form.DOB, form.EducationLevel, form.Gender, form.Phone,
		form.City, form.Area, form.CourseType, form.PreviousCourse, form.IsReturning, form.Status)
	return scanStudent(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
