package enrollments

import "time"

// Enrollment ties a student to a batch with the agreed price. TotalPrice
// is stored after any discount has been applied.
type Enrollment struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"student_id"`
	BatchID        int64     `json:"batch_id"`
	DiscountCodeID *int64    `json:"discount_code_id"`
	UserID         int64     `json:"user_id"`
	TotalPrice     int64     `json:"total_price"`
	Currency       string    `json:"currency"`
	EnrolledAt     time.Time `json:"enrolled_at"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type EnrollmentForm struct {
	StudentID    int64  `json:"student_id" validate:"required,gt=0"`
	BatchID      int64  `json:"batch_id" validate:"required,gt=0"`
	DiscountCode string `json:"discount_code" validate:"omitempty,max=100"`
	UserID       int64  `json:"user_id" validate:"required,gt=0"`
	TotalPrice   *int64 `json:"total_price" validate:"omitempty,gte=0"`
	Currency     string `json:"currency" validate:"omitempty,oneof=USD IQD"`
	Status       string `json:"status" validate:"omitempty,oneof=pending accepted active dropped completed"`
	Notes        string `json:"notes"`
}
