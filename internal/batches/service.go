package batches

import (
	"context"
	"strings"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Batch, error) {
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Batch, error) {
	if id <= 0 {
		return Batch{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form BatchForm) (Batch, error) {
	if err := s.normalize(&form); err != nil {
		return Batch{}, err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form BatchForm) (Batch, error) {
	if id <= 0 {
		return Batch{}, shared.ErrNotFound
	}
	if err := s.normalize(&form); err != nil {
		return Batch{}, err
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Batch, error) {
	if id <= 0 {
		return Batch{}, shared.ErrNotFound
	}
	switch status {
	case "open", "closed", "full":
	default:
		return Batch{}, shared.ErrValidation
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// HasCapacity reports whether the batch can take another active enrollment.
// A nil capacity means unlimited.
func (s *Service) HasCapacity(ctx context.Context, id int64) (bool, error) {
	batch, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if batch.Status != "open" {
		return false, nil
	}
	if batch.Capacity == nil {
		return true, nil
	}
	count, err := s.repo.EnrolledCount(ctx, id)
	if err != nil {
		return false, err
	}
	return count < *batch.Capacity, nil
}

func (s *Service) normalize(form *BatchForm) error {
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		return shared.ErrValidation
	}
	if form.Status == "" {
		form.Status = "open"
	}
	if form.Currency == "" {
		form.Currency = "IQD"
	}
	if form.StartDate != nil && form.EndDate != nil && form.EndDate.Before(*form.StartDate) {
		return shared.ErrValidation
	}
	return nil
}
