package refunds

import "time"

// Refund reverses a payment in full. A payment can be refunded once.
type Refund struct {
	ID         int64      `json:"id"`
	PaymentID  int64      `json:"payment_id"`
	Reason     string     `json:"reason"`
	RefundedAt *time.Time `json:"refunded_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type RefundForm struct {
	PaymentID int64  `json:"payment_id" validate:"required,gt=0"`
	Reason    string `json:"reason"`
}
