package batches

import "time"

// Batch is a scheduled run of a course with its own capacity and price.
type Batch struct {
	ID          int64      `json:"id"`
	CourseID    int64      `json:"course_id"`
	TrainerID   *int64     `json:"trainer_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Level       string     `json:"level"`
	Location    string     `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Schedule    string     `json:"schedule"`
	Capacity    *int       `json:"capacity"`
	Status      string     `json:"status"`
	ActualPrice int64      `json:"actual_price"`
	Currency    string     `json:"currency"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type BatchForm struct {
	CourseID    int64      `json:"course_id" validate:"required,gt=0"`
	TrainerID   *int64     `json:"trainer_id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Level       string     `json:"level" validate:"omitempty,oneof=A1 A2 B1 B2 C1"`
	Location    string     `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Schedule    string     `json:"schedule"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gt=0"`
	Status      string     `json:"status" validate:"omitempty,oneof=open closed full"`
	ActualPrice int64      `json:"actual_price" validate:"gte=0"`
	Currency    string     `json:"currency" validate:"omitempty,oneof=USD IQD"`
}
