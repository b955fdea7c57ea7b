package discountcodes

import "time"

// DiscountCode grants either a flat amount or a percent discount on an
// enrollment. Amount and Percent are mutually optional; UsageLimit nil
// means unlimited.
type DiscountCode struct {
	ID         int64      `json:"id"`
	Code       string     `json:"code"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Purpose    string     `json:"purpose"`
	Amount     *int64     `json:"amount"`
	Percent    *int       `json:"percent"`
	UsageLimit *int       `json:"usage_limit"`
	UsedCount  int        `json:"used_count"`
	ValidFrom  *time.Time `json:"valid_from"`
	ValidTo    *time.Time `json:"valid_to"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type DiscountCodeForm struct {
	Code       string     `json:"code" validate:"required,max=100"`
	UserID     int64      `json:"user_id" validate:"required,gt=0"`
	Name       string     `json:"name" validate:"required,max=255"`
	Purpose    string     `json:"purpose" validate:"required,max=255"`
	Amount     *int64     `json:"amount" validate:"omitempty,gt=0"`
	Percent    *int       `json:"percent" validate:"omitempty,gt=0,lte=100"`
	UsageLimit *int       `json:"usage_limit" validate:"omitempty,gt=0"`
	ValidFrom  *time.Time `json:"valid_from"`
	ValidTo    *time.Time `json:"valid_to"`
	Active     *bool      `json:"active"`
}
