package department

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validation"
)

type Service struct {
	departments Repository
}

func NewService(departments Repository) *Service {
	return &Service{departments: departments}
}

// Create validates and persists a new department. A non-Ok outcome means
// nothing was persisted.
func (s *Service) Create(ctx context.Context, d *Department) (*validation.Outcome, error) {
	out := d.Validate()
	if !out.Ok() {
		return out, nil
	}
	if err := s.departments.Create(ctx, d); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			out.Add("name", "A department with this name already exists.")
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.departments.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Department) (*validation.Outcome, error) {
	out := d.Validate()
	if !out.Ok() {
		return out, nil
	}
	if err := s.departments.Update(ctx, d); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			out.Add("name", "A department with this name already exists.")
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.departments.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return s.departments.List(ctx, limit, offset)
}
