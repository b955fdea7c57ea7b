package enrollments

import (
	"context"
	"fmt"
	"time"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/batches"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/discountcodes"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// BatchSource supplies batch details and capacity checks.
type BatchSource interface {
	Get(ctx context.Context, id int64) (batches.Batch, error)
	HasCapacity(ctx context.Context, id int64) (bool, error)
}

// DiscountSource resolves and tracks discount code usage.
type DiscountSource interface {
	ValidateCode(ctx context.Context, code string) (discountcodes.DiscountCode, error)
	IncrementUsage(ctx context.Context, id int64) error
	DecrementUsage(ctx context.Context, id int64) error
}

type Service struct {
	repo      Repository
	batches   BatchSource
	discounts DiscountSource
	now       func() time.Time
}

func NewService(repo Repository, batchSrc BatchSource, discountSrc DiscountSource) *Service {
	return &Service{repo: repo, batches: batchSrc, discounts: discountSrc, now: time.Now}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Enrollment, error) {
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Enrollment, error) {
	if id <= 0 {
		return Enrollment{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create enrolls a student into a batch. The price defaults to the batch
// price, a valid discount code reduces it, and the code's usage counter is
// bumped once the row is in.
func (s *Service) Create(ctx context.Context, form EnrollmentForm) (Enrollment, error) {
	batch, err := s.batches.Get(ctx, form.BatchID)
	if err != nil {
		return Enrollment{}, err
	}
	ok, err := s.batches.HasCapacity(ctx, form.BatchID)
	if err != nil {
		return Enrollment{}, err
	}
	if !ok {
		return Enrollment{}, fmt.Errorf("batch %d is not accepting enrollments: %w", form.BatchID, shared.ErrValidation)
	}

	params := CreateParams{
		StudentID:  form.StudentID,
		BatchID:    form.BatchID,
		UserID:     form.UserID,
		Currency:   form.Currency,
		Status:     form.Status,
		Notes:      form.Notes,
		EnrolledAt: s.now(),
	}
	if params.Status == "" {
		params.Status = "pending"
	}
	if params.Currency == "" {
		params.Currency = batch.Currency
	}

	price := batch.ActualPrice
	if form.TotalPrice != nil {
		price = *form.TotalPrice
	}

	var discountID *int64
	if form.DiscountCode != "" {
		code, err := s.discounts.ValidateCode(ctx, form.DiscountCode)
		if err != nil {
			return Enrollment{}, err
		}
		price = discountcodes.Apply(code, price)
		discountID = &code.ID
	}
	params.DiscountCodeID = discountID
	params.TotalPrice = price

	enrollment, err := s.repo.Create(ctx, params)
	if err != nil {
		return Enrollment{}, err
	}
	if discountID != nil {
		if err := s.discounts.IncrementUsage(ctx, *discountID); err != nil {
			return Enrollment{}, err
		}
	}
	return enrollment, nil
}

func (s *Service) Update(ctx context.Context, id int64, form EnrollmentForm) (Enrollment, error) {
	if id <= 0 {
		return Enrollment{}, shared.ErrNotFound
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Enrollment{}, err
	}
	params := CreateParams{
		StudentID:      form.StudentID,
		BatchID:        form.BatchID,
		DiscountCodeID: current.DiscountCodeID,
		UserID:         form.UserID,
		TotalPrice:     current.TotalPrice,
		Currency:       form.Currency,
		Status:         form.Status,
		Notes:          form.Notes,
	}
	if form.TotalPrice != nil {
		params.TotalPrice = *form.TotalPrice
	}
	if params.Currency == "" {
		params.Currency = current.Currency
	}
	if params.Status == "" {
		params.Status = current.Status
	}
	return s.repo.Update(ctx, id, params)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Enrollment, error) {
	if id <= 0 {
		return Enrollment{}, shared.ErrNotFound
	}
	switch status {
	case "pending", "accepted", "active", "dropped", "completed":
	default:
		return Enrollment{}, shared.ErrValidation
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes an enrollment and releases its discount code usage.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	enrollment, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if enrollment.DiscountCodeID != nil {
		return s.discounts.DecrementUsage(ctx, *enrollment.DiscountCodeID)
	}
	return nil
}
