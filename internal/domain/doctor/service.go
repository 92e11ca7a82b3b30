package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validation"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

// Create validates and persists a new doctor. A non-Ok outcome means
// nothing was persisted.
func (s *Service) Create(ctx context.Context, d *Doctor) (*validation.Outcome, error) {
	out := d.Validate()
	if !out.Ok() {
		return out, nil
	}
	if err := s.doctors.Create(ctx, d); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			out.Add("department_id", "Selected department does not exist.")
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Doctor) (*validation.Outcome, error) {
	out := d.Validate()
	if !out.Ok() {
		return out, nil
	}
	if err := s.doctors.Update(ctx, d); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			out.Add("department_id", "Selected department does not exist.")
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) ListByDepartment(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListByDepartment(ctx, departmentID, limit, offset)
}
