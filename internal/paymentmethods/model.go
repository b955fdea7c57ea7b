package paymentmethods

import "time"

// PaymentMethod is a way money comes in: cash, card, or transfer.
// MethodNumber holds the card or account number and stays nil for cash.
type PaymentMethod struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	MethodNumber *string   `json:"method_number"`
	Description  string    `json:"description"`
	IsValid      bool      `json:"is_valid"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PaymentMethodForm struct {
	UserID       int64   `json:"user_id" validate:"required,gt=0"`
	Name         string  `json:"name" validate:"required,oneof=cash card transfer"`
	MethodNumber *string `json:"method_number" validate:"omitempty,max=255"`
	Description  string  `json:"description"`
	IsValid      *bool   `json:"is_valid"`
}
