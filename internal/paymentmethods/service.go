package paymentmethods

import (
	"context"
	"fmt"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]PaymentMethod, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (PaymentMethod, error) {
	if id <= 0 {
		return PaymentMethod{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form PaymentMethodForm) (PaymentMethod, error) {
	if form.Name != "cash" && form.MethodNumber == nil {
		return PaymentMethod{}, fmt.Errorf("method_number is required for %s: %w", form.Name, shared.ErrValidation)
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form PaymentMethodForm) (PaymentMethod, error) {
	if id <= 0 {
		return PaymentMethod{}, shared.ErrNotFound
	}
	if form.Name != "cash" && form.MethodNumber == nil {
		return PaymentMethod{}, fmt.Errorf("method_number is required for %s: %w", form.Name, shared.ErrValidation)
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
