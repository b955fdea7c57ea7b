package payroll

import "time"

// Payroll is a salary payment to a staff user for a period. PaidAt stays
// nil until the money actually moves.
type Payroll struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	PaidAt      *time.Time `json:"paid_at"`
	Note        string     `json:"note"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PayrollForm struct {
	UserID      int64     `json:"user_id" validate:"required,gt=0"`
	Amount      int64     `json:"amount" validate:"required,gt=0"`
	Currency    string    `json:"currency" validate:"omitempty,oneof=USD IQD"`
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
	Note        string    `json:"note"`
}

type MonthTotal struct {
	Month time.Time `json:"month"`
	Total int64     `json:"total"`
}
