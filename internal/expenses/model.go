package expenses

import "time"

// Expense is outgoing money: rent, salaries paid outside payroll,
// supplies, whatever the center spends on.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Beneficiary string    `json:"beneficiary"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ExpenseForm struct {
	UserID      int64      `json:"user_id" validate:"required,gt=0"`
	Beneficiary string     `json:"beneficiary" validate:"required,max=255"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount" validate:"required,gt=0"`
	Currency    string     `json:"currency" validate:"omitempty,oneof=USD IQD"`
	ExpenseDate *time.Time `json:"expense_date"`
}

type MonthTotal struct {
	Month time.Time `json:"month"`
	Total int64     `json:"total"`
}
