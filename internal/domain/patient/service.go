package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/validation"
)

// DefaultGender is recorded when no gender is supplied.
const DefaultGender = "Unknown"

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Create validates and persists a new patient. A non-Ok outcome means
// nothing was persisted.
func (s *Service) Create(ctx context.Context, p *Patient) (*validation.Outcome, error) {
	if p.Gender == "" {
		p.Gender = DefaultGender
	}
	out := p.Validate()
	if !out.Ok() {
		return out, nil
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) (*validation.Outcome, error) {
	if p.Gender == "" {
		p.Gender = DefaultGender
	}
	out := p.Validate()
	if !out.Ok() {
		return out, nil
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}
