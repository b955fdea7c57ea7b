package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Payment, error) {
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Payment, error) {
	if id <= 0 {
		return Payment{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create records a payment. A payment is tied to an enrollment or to an
// external payer, never neither.
func (s *Service) Create(ctx context.Context, form PaymentForm) (Payment, error) {
	if form.EnrollmentID == nil && (form.Payer == nil || *form.Payer == "") {
		return Payment{}, fmt.Errorf("payer is required when enrollment_id is absent: %w", shared.ErrValidation)
	}
	params := s.toParams(form)
	params.ReceiptNo = uuid.NewString()
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, id int64, form PaymentForm) (Payment, error) {
	if id <= 0 {
		return Payment{}, shared.ErrNotFound
	}
	if form.EnrollmentID == nil && (form.Payer == nil || *form.Payer == "") {
		return Payment{}, fmt.Errorf("payer is required when enrollment_id is absent: %w", shared.ErrValidation)
	}
	return s.repo.Update(ctx, id, s.toParams(form))
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

func (s *Service) Recent(ctx context.Context, limit int) ([]Payment, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.Recent(ctx, limit)
}

func (s *Service) MethodDistribution(ctx context.Context, currency string) ([]MethodShare, error) {
	return s.repo.MethodDistribution(ctx, currency)
}

func (s *Service) toParams(form PaymentForm) CreateParams {
	params := CreateParams{
		PaymentMethodID: form.PaymentMethodID,
		UserID:          form.UserID,
		EnrollmentID:    form.EnrollmentID,
		Payer:           form.Payer,
		Note:            form.Note,
		Amount:          form.Amount,
		Currency:        form.Currency,
		Type:            form.Type,
		PaymentProof:    form.PaymentProof,
		PaidAt:          s.now(),
	}
	if form.PaidAt != nil {
		params.PaidAt = *form.PaidAt
	}
	if params.Currency == "" {
		params.Currency = "IQD"
	}
	if params.Type == "" {
		params.Type = "full"
	}
	return params
}
