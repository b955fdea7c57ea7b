package payments

import "time"

// Payment records money received. When EnrollmentID is nil the payment
// came from an external payer, and Payer must be set. ReceiptNo is a
// server-generated reference printed on receipts.
type Payment struct {
	ID              int64      `json:"id"`
	ReceiptNo       string     `json:"receipt_no"`
	PaymentMethodID int64      `json:"payment_method_id"`
	UserID          int64      `json:"user_id"`
	EnrollmentID    *int64     `json:"enrollment_id"`
	Payer           *string    `json:"payer"`
	Note            string     `json:"note"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	Type            string     `json:"type"`
	PaidAt          time.Time  `json:"paid_at"`
	PaymentProof    *string    `json:"payment_proof"`
	RefundedAt      *time.Time `json:"refunded_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type PaymentForm struct {
	PaymentMethodID int64      `json:"payment_method_id" validate:"required,gt=0"`
	UserID          int64      `json:"user_id" validate:"required,gt=0"`
	EnrollmentID    *int64     `json:"enrollment_id" validate:"omitempty,gt=0"`
	Payer           *string    `json:"payer" validate:"omitempty,max=255"`
	Note            string     `json:"note"`
	Amount          int64      `json:"amount" validate:"required,gt=0"`
	Currency        string     `json:"currency" validate:"omitempty,oneof=USD IQD"`
	Type            string     `json:"type" validate:"omitempty,oneof=installment full"`
	PaidAt          *time.Time `json:"paid_at"`
	PaymentProof    *string    `json:"payment_proof"`
}

// MethodShare is one slice of the payment method distribution.
type MethodShare struct {
	MethodName string `json:"method_name"`
	Count      int64  `json:"count"`
	Total      int64  `json:"total"`
}

// MonthTotal is an aggregate bucket for chart queries.
type MonthTotal struct {
	Month time.Time `json:"month"`
	Total int64     `json:"total"`
}
