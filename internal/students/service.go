package students

import (
	"context"
	"strings"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

var validStatuses = map[string]struct{}{
	"pending":   {},
	"contacted": {},
	"tested":    {},
	"accepted":  {},
	"rejected":  {},
}

// Service handles student business rules.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Student, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Student, error) {
	if id <= 0 {
		return Student{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form StudentForm) (Student, error) {
	if err := validate(&form); err != nil {
		return Student{}, err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form StudentForm) (Student, error) {
	if id <= 0 {
		return Student{}, shared.ErrNotFound
	}
	if err := validate(&form); err != nil {
		return Student{}, err
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validate(form *StudentForm) error {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Phone = strings.TrimSpace(form.Phone)
	if form.FullName == "" || form.Phone == "" {
		return shared.ErrValidation
	}
	if form.Status == "" {
		form.Status = "pending"
	}
	if _, ok := validStatuses[form.Status]; !ok {
		return shared.ErrValidation
	}
	return nil
}
