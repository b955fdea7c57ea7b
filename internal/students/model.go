package students

import "time"

// Student statuses follow the intake pipeline: pending, contacted, tested,
// accepted, rejected.
type Student struct {
	ID             int64      `json:"id"`
	FullName       string     `json:"full_name"`
	Age            *int       `json:"age"`
	DOB            *time.Time `json:"dob"`
	EducationLevel string     `json:"education_level"`
	Gender         string     `json:"gender"`
	Phone          string     `json:"phone"`
	City           string     `json:"city"`
	Area           string     `json:"area"`
	CourseType     string     `json:"course_type"`
	PreviousCourse string     `json:"previous_course"`
	IsReturning    bool       `json:"is_returning"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// StudentForm is the write shape for create and update.
type StudentForm struct {
	FullName       string     `json:"full_name" validate:"required"`
	Age            *int       `json:"age"`
	DOB            *time.Time `json:"dob"`
	EducationLevel string     `json:"education_level"`
	Gender         string     `json:"gender"`
	Phone          string     `json:"phone" validate:"required"`
	City           string     `json:"city"`
	Area           string     `json:"area"`
	CourseType     string     `json:"course_type"`
	PreviousCourse string     `json:"previous_course"`
	IsReturning    bool       `json:"is_returning"`
	Status         string     `json:"status"`
}
