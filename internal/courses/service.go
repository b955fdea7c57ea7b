package courses

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

func (s *Service) List(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Course, error) {
	if id <= 0 {
		return Course{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form CourseForm) (Course, error) {
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		return Course{}, shared.ErrValidation
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form CourseForm) (Course, error) {
	if id <= 0 {
		return Course{}, shared.ErrNotFound
	}
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		return Course{}, shared.ErrValidation
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
