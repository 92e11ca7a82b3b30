package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validation"
)

type Service struct {
	appointments Repository
}

func NewService(appointments Repository) *Service {
	return &Service{appointments: appointments}
}

// Create validates and persists a new appointment. Field rules and the
// doctor's schedule are checked together; a non-Ok outcome means nothing
// was persisted.
func (s *Service) Create(ctx context.Context, a *Appointment) (*validation.Outcome, error) {
	return s.save(ctx, a, uuid.Nil, s.appointments.Create)
}

// Update revalidates the full record against the doctor's schedule,
// excluding the record itself from the conflict scan.
func (s *Service) Update(ctx context.Context, a *Appointment) (*validation.Outcome, error) {
	return s.save(ctx, a, a.ID, s.appointments.Update)
}

func (s *Service) save(ctx context.Context, a *Appointment, excludeID uuid.UUID, persist func(context.Context, *Appointment) error) (*validation.Outcome, error) {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	out := a.Validate()
	// The schedule check runs even when field rules failed, so the caller
	// sees every failure in one outcome.
	existing, err := s.appointments.ListForDoctor(ctx, a.DoctorID)
	if err != nil {
		return nil, err
	}
	out.Merge(CheckSchedule(a, existing, excludeID))
	if !out.Ok() {
		return out, nil
	}
	if err := persist(ctx, a); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			out.Add(referenceField(err), referenceMessage(err))
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

// referenceField attributes a foreign key failure to the patient or doctor
// field by the violated constraint's name.
func referenceField(err error) string {
	if strings.Contains(err.Error(), "doctor") {
		return "doctor_id"
	}
	return "patient_id"
}

func referenceMessage(err error) string {
	if strings.Contains(err.Error(), "doctor") {
		return "Selected doctor does not exist."
	}
	return "Selected patient does not exist."
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}
