package expenses

import (
	"context"
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

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Expense, error) {
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Expense, error) {
	if id <= 0 {
		return Expense{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form ExpenseForm) (Expense, error) {
	if err := normalize(&form); err != nil {
		return Expense{}, err
	}
	date := s.now()
	if form.ExpenseDate != nil {
		date = *form.ExpenseDate
	}
	return s.repo.Create(ctx, form, date)
}

func (s *Service) Update(ctx context.Context, id int64, form ExpenseForm) (Expense, error) {
	if id <= 0 {
		return Expense{}, shared.ErrNotFound
	}
	if err := normalize(&form); err != nil {
		return Expense{}, err
	}
	date := s.now()
	if form.ExpenseDate != nil {
		date = *form.ExpenseDate
	}
	return s.repo.Update(ctx, id, form, date)
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

func normalize(form *ExpenseForm) error {
	form.Beneficiary = strings.TrimSpace(form.Beneficiary)
	if form.Beneficiary == "" {
		return shared.ErrValidation
	}
	if form.Currency == "" {
		form.Currency = "IQD"
	}
	return nil
}
