package discountcodes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]DiscountCode, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (DiscountCode, error) {
	if id <= 0 {
		return DiscountCode{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) FindByCode(ctx context.Context, code string) (DiscountCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return DiscountCode{}, shared.ErrNotFound
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Create(ctx context.Context, form DiscountCodeForm) (DiscountCode, error) {
	if err := normalize(&form); err != nil {
		return DiscountCode{}, err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form DiscountCodeForm) (DiscountCode, error) {
	if id <= 0 {
		return DiscountCode{}, shared.ErrNotFound
	}
	if err := normalize(&form); err != nil {
		return DiscountCode{}, err
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// ValidateCode resolves a code and checks that it is active, within its
// validity window, and under its usage limit. Callers apply the discount
// only after a nil error.
func (s *Service) ValidateCode(ctx context.Context, code string) (DiscountCode, error) {
	d, err := s.FindByCode(ctx, code)
	if err != nil {
		return DiscountCode{}, err
	}
	now := s.now()
	if !d.Active {
		return DiscountCode{}, fmt.Errorf("discount code %q is not active: %w", d.Code, shared.ErrValidation)
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return DiscountCode{}, fmt.Errorf("discount code %q is not valid yet: %w", d.Code, shared.ErrValidation)
	}
	if d.ValidTo != nil && now.After(*d.ValidTo) {
		return DiscountCode{}, fmt.Errorf("discount code %q has expired: %w", d.Code, shared.ErrValidation)
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return DiscountCode{}, fmt.Errorf("discount code %q has reached its usage limit: %w", d.Code, shared.ErrValidation)
	}
	return d, nil
}

func (s *Service) IncrementUsage(ctx context.Context, id int64) error {
	return s.repo.IncrementUsage(ctx, id)
}

func (s *Service) DecrementUsage(ctx context.Context, id int64) error {
	return s.repo.DecrementUsage(ctx, id)
}

// SweepExpired deactivates codes past their valid_to date and returns the
// number of rows touched.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.DeactivateExpired(ctx, s.now())
}

// Apply returns the price after the discount. Flat amount wins when both
// are set; the result never goes below zero.
func Apply(d DiscountCode, price int64) int64 {
	switch {
	case d.Amount != nil:
		price -= *d.Amount
	case d.Percent != nil:
		price -= price * int64(*d.Percent) / 100
	}
	if price < 0 {
		return 0
	}
	return price
}

func normalize(form *DiscountCodeForm) error {
	form.Code = strings.ToUpper(strings.TrimSpace(form.Code))
	form.Name = strings.TrimSpace(form.Name)
	if form.Code == "" || form.Name == "" {
		return shared.ErrValidation
	}
	if form.Amount == nil && form.Percent == nil {
		return shared.ErrValidation
	}
	if form.ValidFrom != nil && form.ValidTo != nil && form.ValidTo.Before(*form.ValidFrom) {
		return shared.ErrValidation
	}
	return nil
}
