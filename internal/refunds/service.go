package refunds

import (
	"context"
	"fmt"
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

func (s *Service) List(ctx context.Context) ([]Refund, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Refund, error) {
	if id <= 0 {
		return Refund{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create refunds a payment. The unique index on payment_id makes a second
// refund of the same payment come back as a conflict.
func (s *Service) Create(ctx context.Context, form RefundForm) (Refund, error) {
	exists, err := s.repo.PaymentExists(ctx, form.PaymentID)
	if err != nil {
		return Refund{}, err
	}
	if !exists {
		return Refund{}, fmt.Errorf("payment %d: %w", form.PaymentID, shared.ErrNotFound)
	}
	return s.repo.Create(ctx, form.PaymentID, form.Reason, s.now())
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
