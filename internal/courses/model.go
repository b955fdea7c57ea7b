package courses

import "time"

// Course represents a course offering. ProjectType is one of
// online|onsite|kids|ielts.
type Course struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	ProjectType string    `json:"project_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CourseForm struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	ProjectType string `json:"project_type" validate:"omitempty,oneof=online onsite kids ielts"`
	Description string `json:"description"`
}
