package payroll

import (
	"context"
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

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Payroll, error) {
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Payroll, error) {
	if id <= 0 {
		return Payroll{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form PayrollForm) (Payroll, error) {
	if err := normalize(&form); err != nil {
		return Payroll{}, err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form PayrollForm) (Payroll, error) {
	if id <= 0 {
		return Payroll{}, shared.ErrNotFound
	}
	if err := normalize(&form); err != nil {
		return Payroll{}, err
	}
	return s.repo.Update(ctx, id, form)
}

// MarkPaid stamps paid_at once. A second call finds no unpaid row and
// reports not found, which keeps the operation idempotent at the caller.
func (s *Service) MarkPaid(ctx context.Context, id int64) (Payroll, error) {
	if id <= 0 {
		return Payroll{}, shared.ErrNotFound
	}
	return s.repo.MarkPaid(ctx, id, s.now())
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error) {
	return s.repo.TotalByDateRange(ctx, currency, from, to)
}

func (s *Service) TotalByMonth(ctx context.Context, currency string, months int) ([]MonthTotal, error) {
	if months <= 0 || months > 36 {
		months = 12
	}
	return s.repo.TotalByMonth(ctx, currency, shared.MonthsBack(s.now(), months))
}

func normalize(form *PayrollForm) error {
	if form.PeriodEnd.Before(form.PeriodStart) {
		return shared.ErrValidation
	}
	if form.Currency == "" {
		form.Currency = "IQD"
	}
	return nil
}
