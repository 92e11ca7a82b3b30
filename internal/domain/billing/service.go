package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validation"
)

// DueDays is the default payment window after the issue date.
const DueDays = 30

type Service struct {
	bills        Repository
	appointments AppointmentDirectory
	now          func() time.Time
}

func NewService(bills Repository, appointments AppointmentDirectory) *Service {
	return &Service{bills: bills, appointments: appointments, now: time.Now}
}

// Create validates and persists a new bill. Defaults are applied before
// validation: issue date today, payment due thirty days later, amount
// normalized to two decimals. A non-Ok outcome means nothing was persisted.
func (s *Service) Create(ctx context.Context, b *Bill) (*validation.Outcome, error) {
	return s.save(ctx, b, s.bills.Create)
}

func (s *Service) Update(ctx context.Context, b *Bill) (*validation.Outcome, error) {
	return s.save(ctx, b, s.bills.Update)
}

func (s *Service) save(ctx context.Context, b *Bill, persist func(context.Context, *Bill) error) (*validation.Outcome, error) {
	s.applyDefaults(b)
	out := b.Validate()
	// The ownership check runs even when field rules failed, so the caller
	// sees every failure in one outcome.
	if b.AppointmentID != nil {
		resolved, err := s.resolveAppointment(ctx, *b.AppointmentID)
		if err != nil {
			return nil, err
		}
		out.Merge(CheckOwnership(b, resolved))
	}
	if !out.Ok() {
		return out, nil
	}
	if err := persist(ctx, b); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			out.Add("patient_id", "Selected patient does not exist.")
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *Service) applyDefaults(b *Bill) {
	if b.IssuedOn.IsZero() {
		now := s.now().UTC()
		b.IssuedOn = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if b.PaymentDueDate.IsZero() {
		b.PaymentDueDate = b.IssuedOn.AddDate(0, 0, DueDays)
	}
	b.Amount = validation.Round2(b.Amount)
}

func (s *Service) resolveAppointment(ctx context.Context, id uuid.UUID) (*AppointmentRef, error) {
	ref, err := s.appointments.Find(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ref, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bills.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	return s.bills.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	return s.bills.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListUnpaid(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	return s.bills.ListUnpaid(ctx, limit, offset)
}
